// internal/service/notification/application/service_test.go
package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"staybook/internal/service/notification/domain"
)

// ---- 测试替身 ----

type fakeMarker struct {
	seen map[string]bool
	err  error
}

func (f *fakeMarker) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	return f.pdf, f.err
}

type sentMail struct {
	to         string
	subject    string
	htmlBody   string
	attachment []byte
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string, attachment []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, htmlBody: htmlBody, attachment: attachment})
	return nil
}

type fakePublisher struct {
	statuses []*domain.ConfirmationStatus
}

func (f *fakePublisher) PublishStatus(ctx context.Context, status *domain.ConfirmationStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

type notifFixture struct {
	service   *ConfirmationService
	marker    *fakeMarker
	renderer  *fakeRenderer
	mailer    *fakeMailer
	publisher *fakePublisher
}

func newNotifFixture() *notifFixture {
	marker := &fakeMarker{seen: map[string]bool{}}
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.4 fake")}
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}
	service := NewConfirmationService(marker, renderer, mailer, publisher,
		noop.NewTracerProvider().Tracer("test"))
	return &notifFixture{service: service, marker: marker, renderer: renderer, mailer: mailer, publisher: publisher}
}

func testEvent() *domain.BookingConfirmation {
	return &domain.BookingConfirmation{
		EventID:            "evt-1",
		BookingID:          58,
		ConfirmationNumber: "BK-0058",
		UserID:             7,
		UserEmail:          "lina@example.com",
		HotelAddress:       "12 Harbour Road",
		RoomDescriptions:   []string{"Deluxe King", "Twin Garden"},
		CheckIn:            "2026-03-10",
		CheckOut:           "2026-03-14",
		TotalAfterDiscount: "520.00",
		CreatedAt:          time.Now().UTC(),
	}
}

// ---- 用例 ----

func TestHandleBookingConfirmation(t *testing.T) {
	f := newNotifFixture()

	if err := f.service.HandleBookingConfirmation(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(f.mailer.sent))
	}
	mail := f.mailer.sent[0]
	if mail.to != "lina@example.com" {
		t.Errorf("recipient = %q", mail.to)
	}
	if !strings.Contains(mail.subject, "BK-0058") {
		t.Errorf("subject %q should carry the confirmation number", mail.subject)
	}
	for _, want := range []string{"BK-0058", "12 Harbour Road", "Deluxe King, Twin Garden", "2026-03-10", "2026-03-14", "520.00"} {
		if !strings.Contains(mail.htmlBody, want) {
			t.Errorf("mail body is missing %q", want)
		}
	}
	if string(mail.attachment) != "%PDF-1.4 fake" {
		t.Error("pdf attachment was not included")
	}

	if len(f.publisher.statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(f.publisher.statuses))
	}
	status := f.publisher.statuses[0]
	if status.Status != domain.StatusSent || status.UserID != 7 || status.BookingID != 58 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestHandleBookingConfirmationDuplicate(t *testing.T) {
	f := newNotifFixture()
	event := testEvent()

	if err := f.service.HandleBookingConfirmation(context.Background(), event); err != nil {
		t.Fatal(err)
	}
	if err := f.service.HandleBookingConfirmation(context.Background(), event); err != nil {
		t.Fatalf("duplicate delivery must be a no-op, got %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("mail sent %d times, want 1", len(f.mailer.sent))
	}
}

func TestHandleBookingConfirmationRenderFailureDegrades(t *testing.T) {
	f := newNotifFixture()
	f.renderer.err = errors.New("renderer is down")

	if err := f.service.HandleBookingConfirmation(context.Background(), testEvent()); err != nil {
		t.Fatalf("render failure must not fail the pipeline: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("mail must still go out, sent %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].attachment != nil {
		t.Error("degraded mail must not carry an attachment")
	}
	if f.publisher.statuses[0].Status != domain.StatusDegraded {
		t.Errorf("status = %q, want degraded", f.publisher.statuses[0].Status)
	}
}

func TestHandleBookingConfirmationMailFailure(t *testing.T) {
	f := newNotifFixture()
	f.mailer.err = errors.New("smtp refused")

	err := f.service.HandleBookingConfirmation(context.Background(), testEvent())
	if err == nil {
		t.Fatal("mail failure must surface as an error")
	}
	if len(f.publisher.statuses) != 1 || f.publisher.statuses[0].Status != domain.StatusFailed {
		t.Fatalf("expected a failed status, got %+v", f.publisher.statuses)
	}
}

func TestHandleBookingConfirmationMissingEmail(t *testing.T) {
	f := newNotifFixture()
	event := testEvent()
	event.UserEmail = ""

	if err := f.service.HandleBookingConfirmation(context.Background(), event); err == nil {
		t.Fatal("missing recipient must surface as an error")
	}
	if len(f.mailer.sent) != 0 {
		t.Error("no mail should be sent without a recipient")
	}
	if len(f.publisher.statuses) != 1 || f.publisher.statuses[0].Status != domain.StatusFailed {
		t.Fatalf("expected a failed status, got %+v", f.publisher.statuses)
	}
}

func TestComposeConfirmationEmailEscapesHTML(t *testing.T) {
	event := testEvent()
	event.RoomDescriptions = []string{"<script>alert(1)</script>"}

	_, body, err := composeConfirmationEmail(event)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("room description was not escaped")
	}
}
