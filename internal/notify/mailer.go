// Package notify sends order e-mails to the shop owner and to buyers.
package notify

import (
	"fmt"
	"html"
	"log"

	"gopkg.in/gomail.v2"

	"storefront/internal/config"
	"storefront/internal/models"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends order notifications. Without SMTP credentials it only logs.
type Mailer struct {
	sender  sender
	from    string
	adminTo string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		log.Println("[NOTIFY] [INFO] SMTP not configured, order e-mails disabled")
		return &Mailer{from: "noreply@localhost"}
	}

	adminTo := cfg.NotifyEmail
	if adminTo == "" {
		adminTo = cfg.User
	}
	return &Mailer{
		sender:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:    cfg.User,
		adminTo: adminTo,
	}
}

// OrderPlaced tells the shop owner a new order is waiting for payment.
func (m *Mailer) OrderPlaced(order models.Order) error {
	if m.sender == nil {
		log.Printf("[NOTIFY] [INFO] e-mail disabled, new order %s", order.OrderNumber)
		return nil
	}
	return m.send(m.adminTo, fmt.Sprintf("New order %s", order.OrderNumber), orderPlacedBody(order))
}

// PaymentConfirmed tells the buyer their manual payment was accepted.
func (m *Mailer) PaymentConfirmed(order models.Order) error {
	if m.sender == nil {
		log.Printf("[NOTIFY] [INFO] e-mail disabled, payment confirmed for %s", order.OrderNumber)
		return nil
	}
	return m.send(order.UserEmail, fmt.Sprintf("Payment received for order %s", order.OrderNumber), paymentConfirmedBody(order))
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	log.Printf("[NOTIFY] [INFO] sent %q to %s", subject, to)
	return nil
}

func orderPlacedBody(order models.Order) string {
	return fmt.Sprintf(`
		<h2>New order %s</h2>
		<p><strong>Product:</strong> %s</p>
		<p><strong>Amount due:</strong> %.2f</p>
		<p><strong>Customer:</strong> %s &lt;%s&gt;, %s</p>
		<p><strong>Payment method:</strong> %s</p>
		<p>Confirm the payment from the admin orders page once the transfer arrives.</p>
	`,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(order.ProductTitle),
		order.AmountDue(),
		html.EscapeString(order.UserName),
		html.EscapeString(order.UserEmail),
		html.EscapeString(order.PhoneNumber),
		html.EscapeString(string(order.PaymentMethod)),
	)
}

func paymentConfirmedBody(order models.Order) string {
	return fmt.Sprintf(`
		<h2>Thank you, %s</h2>
		<p>Your payment of %.2f for <strong>%s</strong> has been confirmed.</p>
		<p>Order number: %s</p>
	`,
		html.EscapeString(order.UserName),
		order.AmountDue(),
		html.EscapeString(order.ProductTitle),
		html.EscapeString(order.OrderNumber),
	)
}
