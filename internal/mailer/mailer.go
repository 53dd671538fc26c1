package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"instamailer/internal/config"
	"instamailer/internal/logger"
	"instamailer/internal/service"

	"github.com/google/uuid"
)

// implicitTLSPort is the mail-submission port that expects a TLS handshake
// before the SMTP greeting; every other port gets a plaintext dial followed by
// an explicit STARTTLS upgrade.
const implicitTLSPort = 465

var errNotConfigured = errors.New("smtp not configured")

type smtpMailer struct {
	cfg    *config.Config
	logger *logger.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *logger.Logger) service.Mailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one message. The connection is scoped to the call and closed on
// every path; any failure during connect, upgrade, auth, or transmit is
// returned as a plain error with no partial state kept.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.cfg.SMTPConfigured() {
		m.logger.Warn("SMTP not configured, refusing to send")
		return errNotConfigured
	}

	client, err := m.connect(ctx)
	if err != nil {
		m.logger.Error("Error connecting to SMTP server:", err)
		return err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		m.logger.Error("SMTP authentication failed:", err)
		return err
	}

	if err := m.transmit(client, to, subject, body); err != nil {
		m.logger.Error("Error sending email:", err)
		return err
	}

	return client.Quit()
}

func (m *smtpMailer) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	tlsConfig := &tls.Config{ServerName: m.cfg.SMTPHost}

	if m.cfg.SMTPPort == implicitTLSPort {
		dialer := &tls.Dialer{
			NetDialer: &net.Dialer{Timeout: m.cfg.SMTPTimeout},
			Config:    tlsConfig,
		}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
		}
		client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return client, nil
	}

	dialer := &net.Dialer{Timeout: m.cfg.SMTPTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Greet, upgrade to TLS, then re-greet before authenticating.
	if err := client.Hello("localhost"); err != nil {
		client.Close()
		return nil, err
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func (m *smtpMailer) transmit(client *smtp.Client, to, subject, body string) error {
	if err := client.Mail(m.cfg.EmailFrom); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(buildMessage(m.cfg.EmailFrom, to, subject, body, m.cfg.SMTPHost))); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func buildMessage(from, to, subject, body, host string) string {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("Message-ID: <" + uuid.New().String() + "@" + host + ">\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")
	return sb.String()
}
