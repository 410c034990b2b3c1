package email

import (
	"bytes"
	"context"
	"mime"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/seva/internal/config"
	"github.com/seva/internal/logger"
)

type Sender struct {
	cfg  *config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether SMTP credentials are present.
func (s *Sender) Configured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != ""
}

// Send delivers a plain-text message. Without SMTP credentials it only logs a SIMULATION line.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Configured() {
		logger.Infof("SIMULATION: email to=%s subject=%q", to, subject)
		return nil
	}
	from := s.cfg.FromEmail
	if from == "" {
		from = s.cfg.Username
	}
	msg := s.compose(from, to, subject, body)
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	done := make(chan error, 1)
	go func() { done <- s.send(addr, auth, from, []string{to}, msg) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (s *Sender) compose(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	if s.cfg.FromName != "" {
		buf.WriteString("From: " + mime.QEncoding.Encode("utf-8", s.cfg.FromName) + " <" + from + ">\r\n")
	} else {
		buf.WriteString("From: " + from + "\r\n")
	}
	buf.WriteString("To: " + to + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	buf.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buf.Bytes()
}
