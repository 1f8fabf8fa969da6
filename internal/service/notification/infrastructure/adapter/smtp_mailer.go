// internal/service/notification/infrastructure/adapter/smtp_mailer.go
package adapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
)

const attachmentFilename = "confirmation.pdf"

// SMTPMailer 实现 port.Mailer，通过 SMTP 投递带 PDF 附件的 HTML 邮件。
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send 投递邮件。attachment 为 nil 时只发 HTML 正文。
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string, attachment []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message, err := m.buildMessage(to, subject, htmlBody, attachment)
	if err != nil {
		return fmt.Errorf("failed to build mail message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, message); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", to, err)
	}
	return nil
}

// buildMessage 构造 multipart/mixed MIME 报文：HTML 正文 + 可选 PDF 附件。
func (m *SMTPMailer) buildMessage(to, subject, htmlBody string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=utf-8")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if attachment != nil {
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", "application/pdf")
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentFilename))
		attPart, err := writer.CreatePart(attHeader)
		if err != nil {
			return nil, err
		}
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
		base64.StdEncoding.Encode(encoded, attachment)
		if _, err := attPart.Write(encoded); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
