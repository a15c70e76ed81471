package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendAdmissionStatusEmail(toEmail, toName, courseName, applicationNumber, status string) error
	SendContactResponseEmail(toEmail, toName, subject, response string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL of the applicant portal
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// devMode reports whether SMTP credentials are missing, in which case
// messages are logged instead of sent.
func (s *EmailServiceImpl) devMode() bool {
	return s.config.Host == "" || s.config.Username == "" || s.config.Password == ""
}

// SendAdmissionStatusEmail tells an applicant their application was reviewed
func (s *EmailServiceImpl) SendAdmissionStatusEmail(toEmail, toName, courseName, applicationNumber, status string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("applicationNumber", applicationNumber).
			Str("status", status).
			Msg("SMTP credentials not configured - admission status email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Application %s: %s", applicationNumber, statusLabel(status))
	body := AdmissionStatusBody(toName, courseName, applicationNumber, status, s.config.BaseURL)
	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendContactResponseEmail sends the admin's reply to a contact request
func (s *EmailServiceImpl) SendContactResponseEmail(toEmail, toName, subject, response string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - contact response email not sent.")
		return nil
	}

	return s.sendHTMLEmail(toEmail, "Re: "+subject, ContactResponseBody(toName, subject, response))
}

func statusLabel(status string) string {
	if status == "" {
		return status
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

// AdmissionStatusBody renders the status-change message
func AdmissionStatusBody(name, courseName, applicationNumber, status, baseURL string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Your application <strong>%s</strong> for <strong>%s</strong> is now <strong>%s</strong>.</p>
				<p>You can follow your applications at <a href="%s/my-applications">%s/my-applications</a>.</p>
				<p>Best regards,<br>Admissions Office</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(applicationNumber), html.EscapeString(courseName),
		html.EscapeString(status), baseURL, baseURL)
}

// ContactResponseBody renders the reply to a contact request
func ContactResponseBody(name, subject, response string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Thank you for contacting us about "%s".</p>
				<p>%s</p>
				<p>Best regards,<br>Admissions Office</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(subject),
		strings.ReplaceAll(html.EscapeString(response), "\n", "<br>"))
}

// BuildMessage assembles headers and body in a stable order
func BuildMessage(fromName, fromEmail, toEmail, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	message := BuildMessage(s.config.FromName, s.config.FromEmail, toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit() //nolint:errcheck

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
