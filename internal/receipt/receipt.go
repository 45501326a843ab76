package receipt

import "fmt"

// 注文スナップショット。APIがレシートサービスに渡す形で、
// DBには依存しない（商品が消えても明細の名前で描ける）。
type Item struct {
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

type Request struct {
	OrderID         int64  `json:"order_id"`
	UserEmail       string `json:"user_email"`
	TotalCents      int64  `json:"total_cents"`
	ShippingCents   int64  `json:"shipping_cents"`
	CreatedAt       string `json:"created_at"`
	Items           []Item `json:"items"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingCountry string `json:"shipping_country"`
}

type GenerateResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	OrderID  int64  `json:"order_id"`
}

// 注文IDからファイル名は一意に決まる。外部参照キーは注文ID。
func Filename(orderID int64) string {
	return fmt.Sprintf("receipt-order-%d.pdf", orderID)
}
