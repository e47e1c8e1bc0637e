package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", NotFound("tenant %s not found", "t-1"), http.StatusNotFound},
		{"Validation", Validation("no fields provided for update"), http.StatusBadRequest},
		{"Database", Database(errors.New("connection reset")), http.StatusInternalServerError},
		{"Internal", Internal("failed to serialize tags"), http.StatusInternalServerError},
		{"Unclassified", errors.New("boom"), http.StatusInternalServerError},
		{"Wrapped", fmt.Errorf("creating account: %w", Validation("currency code must be 3 characters")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesInternalCauses(t *testing.T) {
	err := Database(errors.New("pq: password authentication failed for user"))
	if got := Message(err); got != "database error" {
		t.Errorf("Message() leaked cause: %q", got)
	}

	err2 := Validation("account ID abc is invalid or inactive")
	if got := Message(err2); got != "account ID abc is invalid or inactive" {
		t.Errorf("Message() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := Database(cause)
	if !errors.Is(err, cause) {
		t.Error("Database() should wrap its cause")
	}
}
