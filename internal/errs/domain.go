package errs

import (
	"github.com/deppfellow/ressourcerie/internal/domain"
)

var (
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeNotFound        = "NOT_FOUND"
	codeInvalidState    = "INVALID_STATE"
)

// FromDomain maps an exchange rule error onto its HTTP shape:
// InvalidArgument is a 400, NotFound a 404 and InvalidState a 409.
func FromDomain(err *domain.Error) *HTTPError {
	switch err.Kind {
	case domain.KindInvalidArgument:
		return NewBadRequestError(err.Message, true, &codeInvalidArgument, nil)
	case domain.KindNotFound:
		httpErr := NewNotFoundError(err.Message, true, &codeNotFound)
		httpErr.MissingIDs = err.MissingIDs
		return httpErr
	case domain.KindInvalidState:
		return NewConflictError(err.Message, true, &codeInvalidState)
	default:
		return NewInternalServerError()
	}
}
