package services

import (
	"crypto/tls"
	"fmt"

	"github.com/campusrate/campusrate-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP is configured; without credentials the mail
// path is skipped entirely.
func (s *EmailService) Enabled() bool {
	return s != nil && s.config.SMTPUsername != ""
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

func (s *EmailService) SendWelcomeEmail(email, username string) error {
	subject := "Welcome to CampusRate"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created.</p>
		<p>You can now rate professors, reply to reviews, and vote on the feedback of others.</p>
		<p><a href="%s">Go to CampusRate</a></p>
	`, username, s.config.BaseURL)

	return s.SendEmail(email, subject, body)
}
