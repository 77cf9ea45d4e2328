package mailer

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier envia e-mails transacionais. Falhas de envio nunca devem
// bloquear a mutação de estado que as originou: o chamador loga e segue.
type Notifier interface {
	Send(to, subject, text, html string) error
}

// Mailer implementa Notifier usando SMTP via gomail
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer cria uma nova instância de Mailer
func NewMailer(host string, port int, user, pass, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		logger: logger,
	}
}

// Send envia um e-mail com corpo texto e alternativa HTML opcional
func (m *Mailer) Send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// TestBody monta o corpo do e-mail de teste
func TestBody() (subject, text, html string) {
	subject = "Test Email from Storefront"
	text = "This is a test email sent from the storefront API."
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Hello from Storefront!</h2>
			<p>This is a test email sent from the storefront API.</p>
			<p>If you're receiving this email, the email service is working correctly!</p>
			<hr style="margin: 20px 0;">
			<p style="color: #666; font-size: 12px;">Sent at: %s</p>
		</div>
	`, time.Now().Format(time.RFC1123))
	return subject, text, html
}
