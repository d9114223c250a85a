package errs

import (
	"net/http"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    *domain.Error
		status int
		code   string
	}{
		{"invalid argument", domain.InvalidArgument("name must not be blank"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"not found", domain.NotFound("offer %d not found", 4), http.StatusNotFound, "NOT_FOUND"},
		{"invalid state", domain.InvalidState("offer %d is not open", 4), http.StatusConflict, "INVALID_STATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			if got.Status != tt.status || got.Code != tt.code {
				t.Fatalf("expected %d %s, got %d %s", tt.status, tt.code, got.Status, got.Code)
			}
			if got.Message != tt.err.Message || !got.Override {
				t.Fatalf("expected client-visible message %q, got %+v", tt.err.Message, got)
			}
		})
	}

	t.Run("missing categories keep their ids", func(t *testing.T) {
		got := FromDomain(domain.MissingCategories([]int64{3, 9}))
		if got.Status != http.StatusNotFound || len(got.MissingIDs) != 2 || got.MissingIDs[1] != 9 {
			t.Fatalf("unexpected error %+v", got)
		}
	})
}
