package apperror

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

const (
	MessageUniqueViolation = "A record with this unique identifier already exists."
	MessageForeignKey      = "The operation conflicts with related records."
	MessageCheckViolation  = "The data violates a storage constraint."
	MessageTimeout         = "An external service is not responding."
	MessageInternal        = "An unexpected error occurred."
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Translate maps any error onto the taxonomy. Unknown failures become INTERNAL with
// a generic message; the cause is kept in Err for logging only.
func Translate(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, fe.Error())
		}
		return Wrap(KindBadRequest, "Validation failed: "+strings.Join(messages, ", "), err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return Wrap(KindConflict, MessageUniqueViolation, err)
		case pgForeignKeyViolation:
			return Wrap(KindPreconditionFailed, MessageForeignKey, err)
		case pgCheckViolation:
			return Wrap(KindBadRequest, MessageCheckViolation, err)
		}
		return Wrap(KindInternal, MessageInternal, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindTimeout, MessageTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrap(KindTimeout, MessageTimeout, err)
	}

	return Wrap(KindInternal, MessageInternal, err)
}
