// Package mail envía los correos transaccionales de la tienda vía SMTP.
package mail

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/firmeza/firmeza-api/internal/application/auth"
	appsales "github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/pkg/config"
)

var _ appsales.Mailer = (*Mailer)(nil)
var _ auth.WelcomeMailer = (*Mailer)(nil)

// Mailer envía correos con jordan-wright/email sobre SMTP plano con auth.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer construye el mailer. Usar solo si cfg.Enabled().
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendWelcome correo de bienvenida tras el registro.
func (m *Mailer) SendWelcome(to, customerName string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = "Bienvenido a Firmeza"
	e.Text = []byte(fmt.Sprintf(
		"Hola %s,\n\nTu cuenta en Firmeza fue creada con éxito. "+
			"Ya puedes comprar materiales de construcción y herramientas en nuestra tienda.\n\n"+
			"Equipo Firmeza", customerName))
	return m.send(e)
}

// SendPurchaseConfirmation confirmación de compra con el recibo PDF adjunto.
func (m *Mailer) SendPurchaseConfirmation(to, customerName string, sale *entity.Sale, attachment []byte, attachmentName string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Confirmación de compra %s", sale.SaleNumber)
	e.Text = []byte(fmt.Sprintf(
		"Hola %s,\n\nGracias por tu compra. Venta %s por un total de $%s.\n"+
			"Adjuntamos el recibo en PDF.\n\nEquipo Firmeza",
		customerName, sale.SaleNumber, sale.Total.StringFixed(2)))
	if len(attachment) > 0 {
		if _, err := e.Attach(bytes.NewReader(attachment), attachmentName, "application/pdf"); err != nil {
			return fmt.Errorf("adjuntar recibo: %w", err)
		}
	}
	return m.send(e)
}

func (m *Mailer) send(e *email.Email) error {
	smtpAuth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := e.Send(m.cfg.Addr(), smtpAuth); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
