// internal/service/notification/infrastructure/adapter/smtp_mailer_test.go
package adapter

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	mailer := NewSMTPMailer("localhost", 587, "", "", "reservations@staybook.example")
	pdf := []byte("%PDF-1.4 fake content")

	message, err := mailer.buildMessage("lina@example.com", "Your booking confirmation BK-0058", "<p>hello</p>", pdf)
	if err != nil {
		t.Fatal(err)
	}
	text := string(message)

	for _, want := range []string{
		"From: reservations@staybook.example",
		"To: lina@example.com",
		"Subject: Your booking confirmation BK-0058",
		"Content-Type: multipart/mixed",
		"Content-Type: text/html; charset=utf-8",
		"<p>hello</p>",
		"Content-Type: application/pdf",
		`attachment; filename="confirmation.pdf"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message is missing %q", want)
		}
	}

	// 附件必须能从 base64 解码回原始字节
	encoded := base64.StdEncoding.EncodeToString(pdf)
	if !strings.Contains(text, encoded) {
		t.Error("attachment is not base64 encoded in the message body")
	}
}

func TestBuildMessageWithoutAttachment(t *testing.T) {
	mailer := NewSMTPMailer("localhost", 587, "", "", "reservations@staybook.example")

	message, err := mailer.buildMessage("lina@example.com", "subject", "<p>hello</p>", nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(message, []byte("application/pdf")) {
		t.Error("no attachment part expected")
	}
	if !bytes.Contains(message, []byte("<p>hello</p>")) {
		t.Error("body is missing")
	}
}
