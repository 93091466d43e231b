package libs

import (
	"bytes"
	"easy-shop/config"
	"easy-shop/models"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var ErrMailerNotConfigured = errors.New("SMTP configuration missing")

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, ErrMailerNotConfigured
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}, nil
}

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2 style="color: #333;">Thank you for your order, {{.CustomerName}}!</h2>
    <p><strong>Order:</strong> {{.ID}}</p>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Lines}}
      <tr>
        <td>{{.Name}}</td>
        <td style="text-align: right;">{{.Quantity}} x ${{.Price.StringFixed 2}}</td>
      </tr>
      {{end}}
    </table>
    <p><strong>Total:</strong> ${{.TotalPrice.StringFixed 2}}</p>
    <p><strong>Payment:</strong> {{.PaymentMethod}}</p>
    <p><strong>Deliver to:</strong> {{.Address}} ({{.Mobile}})</p>
    <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
  </div>
</body>
</html>
`))

func renderOrderConfirmation(order *models.Order) (string, error) {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, order); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return body.String(), nil
}

func (m *Mailer) SendOrderConfirmation(order *models.Order) error {
	body, err := renderOrderConfirmation(order)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Easy Shop", order.ID))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
