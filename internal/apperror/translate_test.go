package apperror

import (
	"context"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{
			name:    "application error passes through",
			err:     NotFound("Category not found"),
			kind:    KindNotFound,
			message: "Category not found",
		},
		{
			name:    "wrapped application error",
			err:     fmt.Errorf("usecase: %w", Conflict("Category name must be unique")),
			kind:    KindConflict,
			message: "Category name must be unique",
		},
		{
			name:    "unique violation",
			err:     errors.Wrap(&pq.Error{Code: "23505", Message: "duplicate key value"}, "insert product"),
			kind:    KindConflict,
			message: MessageUniqueViolation,
		},
		{
			name:    "foreign key violation",
			err:     &pq.Error{Code: "23503"},
			kind:    KindPreconditionFailed,
			message: MessageForeignKey,
		},
		{
			name:    "check violation",
			err:     &pq.Error{Code: "23514"},
			kind:    KindBadRequest,
			message: MessageCheckViolation,
		},
		{
			name:    "other postgres error",
			err:     &pq.Error{Code: "42P01", Message: "relation does not exist"},
			kind:    KindInternal,
			message: MessageInternal,
		},
		{
			name:    "deadline exceeded",
			err:     errors.Wrap(context.DeadlineExceeded, "select products"),
			kind:    KindTimeout,
			message: MessageTimeout,
		},
		{
			name:    "network timeout",
			err:     timeoutErr{},
			kind:    KindTimeout,
			message: MessageTimeout,
		},
		{
			name:    "unknown error does not leak detail",
			err:     errors.New("pq: password authentication failed for user catalog"),
			kind:    KindInternal,
			message: MessageInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestTranslateNil(t *testing.T) {
	assert.Nil(t, Translate(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("bad")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, Is(fmt.Errorf("wrapped: %w", PreconditionFailed("blocked")), KindPreconditionFailed))
	assert.False(t, Is(NotFound("missing"), KindConflict))
}

func TestErrorString(t *testing.T) {
	err := Wrap(KindInternal, MessageInternal, errors.New("driver: bad connection"))
	assert.Equal(t, "INTERNAL: An unexpected error occurred.: driver: bad connection", err.Error())
	assert.Equal(t, "NOT_FOUND: Product not found", NotFound("Product not found").Error())
}
