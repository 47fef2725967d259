package mail

import (
	"gopkg.in/gomail.v2"
)

// Notifier is the outbound mail capability. Delivery failures are the
// caller's problem to isolate; Send itself never retries.
type Notifier interface {
	Send(to, subject, htmlBody string) error
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(host string, port int, user, pass string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (n *SMTPNotifier) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return n.dialer.DialAndSend(m)
}
