// Package notify delivers rendered alert reports over SMTP.
package notify

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/brishavK71/kafka-monitoring/config"
	"github.com/brishavK71/kafka-monitoring/internal/report"
)

// Notifier sends a rendered report to the configured recipients.
type Notifier interface {
	Send(r report.Rendered) error
}

// Mailer implements Notifier over SMTP. UseTLS selects STARTTLS; otherwise
// the connection uses implicit TLS. Authentication happens only when both
// username and password are configured.
type Mailer struct {
	cfg config.SMTP
}

// NewMailer creates a Mailer from SMTP settings.
func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send connects, optionally authenticates, submits the message and quits.
func (m *Mailer) Send(r report.Rendered) error {
	msg, err := buildMessage(m.cfg.FromEmail, m.cfg.ToEmails, r)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)
	tlsCfg := &tls.Config{ServerName: m.cfg.Server}

	var client *smtp.Client
	if m.cfg.UseTLS {
		client, err = smtp.DialStartTLS(addr, tlsCfg)
	} else {
		client, err = smtp.DialTLS(addr, tlsCfg)
	}
	if err != nil {
		return fmt.Errorf("dial smtp server %s: %w", addr, err)
	}
	defer func() { _ = client.Close() }()

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.SendMail(m.cfg.FromEmail, m.cfg.ToEmails, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles a multipart/alternative MIME message carrying the
// plain-text and HTML renderings.
func buildMessage(from string, to []string, r report.Rendered) ([]byte, error) {
	var buf bytes.Buffer
	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=\"utf-8\"", r.Text},
		{"text/html; charset=\"utf-8\"", r.HTML},
	} {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Type", part.contentType)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", r.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")
	buf.Write(body.Bytes())

	return buf.Bytes(), nil
}
