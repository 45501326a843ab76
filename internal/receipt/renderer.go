package receipt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Renderer は注文スナップショットをレシートPDFに描いて保存する。
// 読み取り専用の射影で、状態は一切変更しない。
type Renderer struct {
	storeName string
	dir       string
}

func NewRenderer(storeName, dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &Renderer{storeName: storeName, dir: dir}, nil
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// Render はPDFを生成して保存先パスを返す。
func (r *Renderer) Render(req Request) (string, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	//ヘッダ
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(139, 69, 19)
	pdf.CellFormat(0, 10, r.storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	//注文情報ブロック
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(139, 69, 19)
	colW := 61.5
	pdf.CellFormat(colW, 8, "Order Details", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW, 8, "Customer", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW, 8, "Shipping Address", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(45, 45, 45)
	pdf.SetFillColor(249, 245, 238)

	orderInfo := fmt.Sprintf("Order #: %d\nDate: %s", req.OrderID, req.CreatedAt)
	email := req.UserEmail
	if email == "" {
		email = "N/A"
	}
	address := req.ShippingAddress
	if req.ShippingCity != "" {
		address += "\n" + req.ShippingCity
	}
	if req.ShippingCountry != "" {
		address += "\n" + req.ShippingCountry
	}
	if address == "" {
		address = "N/A"
	}

	y := pdf.GetY()
	x := 15.0
	maxY := y
	for i, text := range []string{orderInfo, "Email:\n" + email, address} {
		pdf.SetXY(x+float64(i)*colW, y)
		pdf.MultiCell(colW, 5, text, "1", "L", true)
		//3列の高さが揃わないので、一番伸びた列に合わせる
		if endY := pdf.GetY(); endY > maxY {
			maxY = endY
		}
	}
	pdf.SetXY(15, maxY+2)

	//明細テーブル
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(139, 69, 19)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(39.5, 8, "Line Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(45, 45, 45)
	pdf.SetFillColor(255, 253, 248)
	for _, it := range req.Items {
		name := it.Name
		if name == "" {
			name = "Product"
		}
		pdf.CellFormat(90, 7, name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, dollars(it.PriceCents), "1", 0, "R", true, 0, "")
		pdf.CellFormat(39.5, 7, dollars(it.PriceCents*it.Quantity), "1", 1, "R", true, 0, "")
	}
	pdf.Ln(4)

	//合計ブロック（小計 = 合計 - 送料）
	subtotal := req.TotalCents - req.ShippingCents
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(145, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(39.5, 7, dollars(subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(39.5, 7, dollars(req.ShippingCents), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(139, 69, 19)
	pdf.CellFormat(145, 9, "Total", "", 0, "R", true, 0, "")
	pdf.CellFormat(39.5, 9, dollars(req.TotalCents), "", 1, "R", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, "Thank you for your purchase.", "", 1, "C", false, 0, "")

	path := filepath.Join(r.dir, Filename(req.OrderID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return path, nil
}

// Lookup は生成済みレシートを注文IDで探す。
func (r *Renderer) Lookup(orderID int64) (string, string, bool) {
	filename := Filename(orderID)
	path := filepath.Join(r.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", "", false
	}
	return filename, path, true
}
