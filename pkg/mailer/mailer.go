package mailer

import (
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Message is a rendered email ready to send.
type Message struct {
	Subject string
	HTML    string
}

// Mailer sends email over SMTP.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// New creates a mailer. Send fails if Host is empty; a worker without SMTP
// configured retries jobs into the DLQ rather than silently dropping them.
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers one message to a recipient.
func (m *Mailer) Send(to string, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	gm.SetHeader("To", to)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}
