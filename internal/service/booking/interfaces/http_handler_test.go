// internal/service/booking/interfaces/http_handler_test.go
package interfaces

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"staybook/internal/service/booking/domain"
)

func TestIdentityFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    int64
		wantErr bool
	}{
		{name: "valid", header: "7", want: 7},
		{name: "missing", header: "", wantErr: true},
		{name: "not a number", header: "abc", wantErr: true},
		{name: "zero", header: "0", wantErr: true},
		{name: "negative", header: "-3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/my/bookings", nil)
			if tt.header != "" {
				r.Header.Set("X-User-ID", tt.header)
			}
			got, err := identityFromHeader(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.NotFoundf("room with ID 4 not found"), 404},
		{"validation", domain.Validationf("check-out date must be after check-in date"), 400},
		{"conflict", domain.Conflictf("room 4 is not available for the selected dates"), 409},
		{"internal", domain.WrapInternal(errors.New("connection refused"), "failed to load user"), 500},
		{"plain error", errors.New("something unexpected"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeDomainError(context.Background(), w, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	w := httptest.NewRecorder()
	writeDomainError(context.Background(), w, errors.New("dsn user:password@tcp(db:3306)"))

	body := w.Body.String()
	if body == "" {
		t.Fatal("expected a body")
	}
	if strings.Contains(body, "password") || strings.Contains(body, "dsn") {
		t.Errorf("internal details leaked to the client: %s", body)
	}
}
