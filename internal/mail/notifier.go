package mail

import (
	"fmt"
	"log"
	"strings"

	"syrupstore/internal/domain/model"
	"syrupstore/internal/usecase"
)

// Notifier は注文関連の通知メールを組み立てて送る。
// 送信失敗は呼び出し元の処理を止めない：ログに残してfalseを返すだけ。
type Notifier struct {
	mailer     Mailer
	storeName  string
	adminEmail string
}

func NewNotifier(mailer Mailer, storeName, adminEmail string) *Notifier {
	return &Notifier{
		mailer:     mailer,
		storeName:  storeName,
		adminEmail: adminEmail,
	}
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// 明細を「  • 名前 x数量 - 単価」の行に整形する。
func itemLines(items []usecase.OrderItemOutput) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = "Product"
		}
		lines = append(lines, fmt.Sprintf("  • %s x%d - %s", name, it.Quantity, dollars(it.PriceCents)))
	}
	return strings.Join(lines, "\n")
}

// 空の要素は飛ばして ", " で結合する。
func joinAddress(o usecase.OrderOutput) string {
	parts := []string{
		o.ShippingAddress1,
		o.ShippingAddress2,
		o.ShippingCity,
		o.ShippingRegion,
		o.ShippingCountry,
		o.ShippingPostal,
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// SendOrderConfirmation は注文確認メールを購入者に送る。
func (n *Notifier) SendOrderConfirmation(o usecase.OrderOutput, username, email string) bool {
	if email == "" {
		email = o.PayerEmail
	}

	subject := fmt.Sprintf("Order #%d Confirmed - %s", o.ID, n.storeName)

	body := fmt.Sprintf(`Hi %s,

Thank you for your order! We've received your order and will process it shortly.

Order Details:
--------------
Order #: %d
Status: %s
Payment Method: Interac e-Transfer
Payment Reference: %s

Items Ordered:
%s

Subtotal: %s
Shipping: %s
Total: %s

Shipping Address:
%s

What's Next?
------------
1. We'll verify your Interac e-Transfer payment
2. Once confirmed, we'll prepare your order for shipment
3. You'll receive a notification when your order ships

Thank you for supporting local maple syrup!

- %s Team
`,
		username,
		o.ID,
		model.OrderStatus(o.Status).Label(),
		o.PaymentReference,
		itemLines(o.Items),
		dollars(o.TotalCents-o.ShippingCents),
		dollars(o.ShippingCents),
		dollars(o.TotalCents),
		joinAddress(o),
		n.storeName,
	)

	return n.send(email, subject, body)
}

// SendAdminOrderAlert は新規注文アラートを管理者に送る。
func (n *Notifier) SendAdminOrderAlert(o usecase.OrderOutput, username, email string) bool {
	subject := fmt.Sprintf("New Order #%d - %s", o.ID, n.storeName)

	body := fmt.Sprintf(`New Order Received!

Order #: %d
Customer: %s (%s)
Status: %s

Payment Information:
--------------------
Method: Interac e-Transfer
Reference: %s
Payer Email: %s
Amount: %s

Items:
%s

Shipping Details:
-----------------
Zone: %s
Cost: %s
Address:
%s

Next Steps:
-----------
1. Verify Interac e-Transfer in your email/bank
2. Mark order as PAID in the admin panel
3. Prepare items for shipment
4. Update order status to SHIPPED
`,
		o.ID,
		username,
		email,
		model.OrderStatus(o.Status).Label(),
		o.PaymentReference,
		o.PayerEmail,
		dollars(o.TotalCents),
		itemLines(o.Items),
		o.ShippingZone,
		dollars(o.ShippingCents),
		joinAddress(o),
	)

	return n.send(n.adminEmail, subject, body)
}

// SendShipmentNotice は発送通知を購入者に送る。
func (n *Notifier) SendShipmentNotice(o usecase.OrderOutput, username, email string) bool {
	if email == "" {
		email = o.PayerEmail
	}

	subject := fmt.Sprintf("Order #%d Has Shipped - %s", o.ID, n.storeName)

	body := fmt.Sprintf(`Hi %s,

Great news! Your order has shipped!

Order #: %d
Status: %s

Your maple syrup is on its way to:
%s

Estimated Delivery:
-------------------
Depending on your location, delivery typically takes:
• Local (P0R): 1-3 business days
• Ontario: 3-5 business days
• Canada: 5-10 business days
• International: 10-20 business days

Tracking information may be limited for standard shipping. If you have
any questions about your order, please reply to this email.

Thank you for your purchase!

- %s Team
`,
		username,
		o.ID,
		model.OrderStatus(o.Status).Label(),
		joinAddress(o),
		n.storeName,
	)

	return n.send(email, subject, body)
}

func (n *Notifier) send(to, subject, body string) bool {
	if to == "" {
		log.Printf("mail: no recipient for %q, skipped", subject)
		return false
	}
	if err := n.mailer.Send(to, subject, body); err != nil {
		//送信失敗は注文処理を巻き戻さない
		log.Printf("mail: send %q to %s failed: %v", subject, to, err)
		return false
	}
	return true
}
