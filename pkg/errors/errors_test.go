package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load term: %w", Clone(ErrNotFound, "term not found"))

	got := FromError(wrapped)

	assert.Equal(t, ErrNotFound.Code, got.Code)
	assert.Equal(t, "term not found", got.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message, "Clone must not mutate the original")
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	got := FromError(sql.ErrConnDone)

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.True(t, errors.Is(got, sql.ErrConnDone))
	assert.Nil(t, FromError(nil))
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(errors.New("dial tcp"), ErrInternal.Code, ErrInternal.Status, "failed to publish event")

	assert.Equal(t, "failed to publish event: dial tcp", err.Error())
	assert.Equal(t, "cache miss", ErrCacheMiss.Error())
}

func TestIsComparesCodes(t *testing.T) {
	rejected := fmt.Errorf("book: %w", Clone(ErrAppointmentRejected, "tutor is not available"))

	assert.True(t, errors.Is(rejected, ErrAppointmentRejected))
	assert.False(t, errors.Is(rejected, ErrConflict))
	assert.False(t, errors.Is(Clone(ErrNotFound, ""), sql.ErrNoRows))
}
