package notifications

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/you/schoolauth/domain"
)

// SMTPService implements domain.EmailSender over standard SMTP submission
type SMTPService struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPService creates a new SMTP email sender
func NewSMTPService(host string, port int, username, password, from string) domain.EmailSender {
	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPService{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// Send implements domain.EmailSender
func (s *SMTPService) Send(to, subject, body string) error {
	// If the server is not configured, log instead of sending
	if strings.HasPrefix(s.addr, ":") || s.from == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmailSendFailed, err)
	}
	return nil
}
