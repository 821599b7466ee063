package wikinews_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wikinews"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", "2024-01-15")

	assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
	assert.Equal(t, "snapshot for 2024-01-15 not found", wikinews.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", wikinews.Errorf(wikinews.EINVALID, "bad date"))

	assert.Equal(t, wikinews.EINVALID, wikinews.ErrorCode(err))
	assert.Equal(t, "bad date", wikinews.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, wikinews.EINTERNAL, wikinews.ErrorCode(err))
	assert.Equal(t, "Internal error", wikinews.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikinews.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikinews.ErrorMessage(nil))
}
