package sqlerr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "foreign key",
			err:     errors.Wrap(&pgconn.PgError{Code: "23503", TableName: "offer_categories", ColumnName: "category_id"}, "insert offer"),
			status:  http.StatusBadRequest,
			code:    "OFFER_CATEGORY_NOT_FOUND",
			message: "The referenced Category does not exist",
		},
		{
			name:    "pending demand race",
			err:     &pgconn.PgError{Code: "23505", TableName: "demands", ConstraintName: pendingDemandConstraint},
			status:  http.StatusConflict,
			code:    "DEMAND_ALREADY_PENDING",
			message: "Member already has a pending demand on this offer",
		},
		{
			name:    "check violation",
			err:     &pgconn.PgError{Code: "23514", TableName: "offers", ConstraintName: "offers_price_check"},
			status:  http.StatusBadRequest,
			code:    "OFFER_INVALID",
			message: "The Price value does not meet required conditions",
		},
		{
			name:   "serialization failure",
			err:    fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}),
			status: http.StatusConflict,
			code:   "CONCURRENT_UPDATE",
		},
		{
			name:    "no rows with table hint",
			err:     errors.Wrapf(pgx.ErrNoRows, "table:categories: update category %d", 3),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Category not found",
		},
		{
			name:    "domain error",
			err:     errors.Wrap(domain.InvalidState("offer 2 is not open"), "validate"),
			status:  http.StatusConflict,
			code:    "INVALID_STATE",
			message: "offer 2 is not open",
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatalf("expected *errs.HTTPError")
			}
			if httpErr.Status != tt.status || httpErr.Code != tt.code {
				t.Fatalf("expected %d %s, got %d %s", tt.status, tt.code, httpErr.Status, httpErr.Code)
			}
			if tt.message != "" && httpErr.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, httpErr.Message)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(errors.Wrap(&pgconn.PgError{Code: "40001"}, "commit")) {
		t.Fatalf("expected serialization failure to be retryable")
	}
	if IsRetryable(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected unique violation not to be retryable")
	}
	if IsRetryable(errors.New("boom")) {
		t.Fatalf("expected plain error not to be retryable")
	}
}
