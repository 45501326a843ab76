package shipping

import "strings"

// 配送ゾーンラベル
const (
	ZoneLocalRadius   = "LOCAL_RADIUS"
	ZoneOntario       = "ONTARIO"
	ZoneCanada        = "CANADA"
	ZoneInternational = "INTERNATIONAL"
)

// ゾーンごとの固定送料（セント）
const (
	costLocalRadius   int64 = 499
	costOntario       int64 = 799
	costCanada        int64 = 1299
	costInternational int64 = 2999
)

func normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Estimate は配送先から (送料セント, ゾーンラベル) を返す。
// 純粋関数で、どんな入力でも失敗しない。大文字小文字・前後空白は無視する。
// 判定は上から順に最初に一致したものが勝つ。
func Estimate(country, region, postal string) (int64, string) {
	countryCode := normalize(country)
	regionCode := normalize(region)

	//郵便番号は内部の空白も除去して先頭3文字をプレフィックスにする
	postalCode := strings.ReplaceAll(normalize(postal), " ", "")
	postalPrefix := postalCode
	if len(postalPrefix) > 3 {
		postalPrefix = postalPrefix[:3]
	}

	if countryCode != "CA" && countryCode != "CANADA" {
		return costInternational, ZoneInternational
	}
	if regionCode != "ON" && regionCode != "ONTARIO" {
		return costCanada, ZoneCanada
	}
	if postalPrefix == "P0R" {
		return costLocalRadius, ZoneLocalRadius
	}
	return costOntario, ZoneOntario
}

// CostCents は送料だけが欲しい呼び出し元向け。
func CostCents(country, region, postal string) int64 {
	cents, _ := Estimate(country, region, postal)
	return cents
}
