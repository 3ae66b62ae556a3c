// Package mailer renders invoices and sends order-confirmation email
// through the transactional email provider. One attempt, no retries: the
// order is already committed by the time anything here runs, so failures are
// logged and reported to the caller but never raised further.
package mailer

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/hackwithroshan/autocosmic-shop-sub000/cart"
	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

type Dispatcher struct {
	apiKey    string
	sender    string
	storeName string
	currency  string
	log       *logrus.Logger
}

func NewDispatcher(cfg *config.Config, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		apiKey:    cfg.SendgridAPIKey,
		sender:    cfg.EmailSender,
		storeName: cfg.StoreName,
		currency:  cfg.StoreCurrency,
		log:       log,
	}
}

// SendOrderConfirmation emails the order summary with the PDF invoice
// attached. When an account was provisioned during checkout, plaintextPassword
// carries the generated credential; it is included once and never
// retrievable again.
func (d *Dispatcher) SendOrderConfirmation(order *models.Order, lines []cart.Line, plaintextPassword string) error {
	data := BuildInvoiceData(order, lines, d.storeName, d.currency)

	pdf, err := RenderPDF(data)
	if err != nil {
		d.log.Errorf("invoice render failed for order %s: %v", order.OrderRef, err)
		return err
	}

	from := mail.NewEmail(d.storeName, d.sender)
	to := mail.NewEmail(order.CustomerName, order.CustomerEmail)
	subject := fmt.Sprintf("%s order %s confirmed", d.storeName, order.OrderRef)

	html := d.buildHTML(data, plaintextPassword)
	message := mail.NewSingleEmail(from, subject, to, htmlToText(html), html)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename("invoice-" + order.OrderRef + ".pdf")
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	resp, err := sendgrid.NewSendClient(d.apiKey).Send(message)
	if err != nil {
		d.log.Errorf("order-confirmation send failed for %s: %v", order.OrderRef, err)
		return err
	}
	if resp.StatusCode >= 400 {
		d.log.Errorf("order-confirmation rejected for %s: status %d: %s", order.OrderRef, resp.StatusCode, resp.Body)
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	d.log.Infof("order confirmation sent for %s to %s", order.OrderRef, order.CustomerEmail)
	return nil
}

func (d *Dispatcher) buildHTML(data InvoiceData, plaintextPassword string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", data.Customer)
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> placed on %s.</p>", data.OrderRef, data.Date)

	b.WriteString("<table border='1' cellpadding='6' cellspacing='0'><tr><th>Item</th><th>Qty</th><th>Subtotal</th></tr>")
	for _, l := range data.Lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s %s</td></tr>",
			l.Name, l.Quantity, data.Currency, l.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "<tr><td colspan='2'><strong>Total</strong></td><td><strong>%s %s</strong></td></tr></table>",
		data.Currency, data.Total.StringFixed(2))

	if plaintextPassword != "" {
		fmt.Fprintf(&b, "<p>An account was created for you.<br>Login: <strong>%s</strong><br>Password: <strong>%s</strong></p>",
			data.Email, plaintextPassword)
		b.WriteString("<p>Please change this password after your first login; it will not be shown again.</p>")
	}

	b.WriteString("<p>Your invoice is attached.</p>")
	return b.String()
}

// htmlToText is the crude plaintext fallback for the multipart body.
func htmlToText(html string) string {
	replacer := strings.NewReplacer(
		"</p>", "\n", "</tr>", "\n", "</h2>", "\n", "<br>", "\n",
	)
	text := replacer.Replace(html)
	for {
		start := strings.IndexByte(text, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start:], '>')
		if end < 0 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}
	return strings.TrimSpace(text)
}
