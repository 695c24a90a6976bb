package notifications

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

const otpTemplate = `<html><body>
<p>Hi {{.Name}},</p>
<p>Your one-time code is <strong>{{.Code}}</strong>. It expires shortly, so use it soon.</p>
<p>If you did not request this, you can ignore this email.</p>
<p>&copy; {{.Year}} Video Stream App</p>
</body></html>`

const resetSuccessTemplate = `<html><body>
<p>Hi {{.Name}},</p>
<p>Your password was reset successfully. If this wasn't you, contact support immediately.</p>
<p>&copy; {{.Year}} Video Stream App</p>
</body></html>`

// SMTPServiceImpl implements domain.NotificationService over plain SMTP
// with STARTTLS. When no credentials are configured the message is
// logged instead of sent, which keeps local development working.
type SMTPServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string

	otpTmpl   *template.Template
	resetTmpl *template.Template
}

// NewSMTPService creates a new SMTP notification service
func NewSMTPService(host string, port int, username, password, from, fromName string) domain.NotificationService {
	return &SMTPServiceImpl{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		from:      from,
		fromName:  fromName,
		otpTmpl:   template.Must(template.New("otp").Parse(otpTemplate)),
		resetTmpl: template.Must(template.New("reset").Parse(resetSuccessTemplate)),
	}
}

// SendOTPEmail implements domain.NotificationService
func (s *SMTPServiceImpl) SendOTPEmail(to, name, code string) error {
	var buf bytes.Buffer
	err := s.otpTmpl.Execute(&buf, map[string]any{
		"Name": displayName(name), "Code": code, "Year": time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, "Your Verification Code - Video Stream App", buf.String())
}

// SendPasswordResetConfirmation implements domain.NotificationService
func (s *SMTPServiceImpl) SendPasswordResetConfirmation(to, name string) error {
	var buf bytes.Buffer
	err := s.resetTmpl.Execute(&buf, map[string]any{
		"Name": displayName(name), "Year": time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, "Password Reset Successful", buf.String())
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "User"
	}
	return name
}

func (s *SMTPServiceImpl) send(to, subject, htmlBody string) error {
	if s.username == "" {
		log.Printf("[MOCK EMAIL] to=%s subject=%q", to, subject)
		return nil
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.from)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	return s.sendWithTimeout(to, []byte(msg))
}

// sendWithTimeout dials with a TCP timeout and sets a connection
// deadline so a stalled SMTP server cannot hang a request.
func (s *SMTPServiceImpl) sendWithTimeout(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
