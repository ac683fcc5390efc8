package snapdex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/snapdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := snapdex.Errorf(snapdex.ENOTFOUND, "directory %q not found", "mhtml")

	assert.Equal(t, snapdex.ENOTFOUND, snapdex.ErrorCode(err))
	assert.Equal(t, "directory \"mhtml\" not found", snapdex.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("walk: %w", snapdex.Errorf(snapdex.ENOTFOUND, "missing"))

	assert.Equal(t, snapdex.ENOTFOUND, snapdex.ErrorCode(err))
	assert.Equal(t, "missing", snapdex.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, snapdex.EINTERNAL, snapdex.ErrorCode(err))
	assert.Equal(t, "Internal error.", snapdex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, snapdex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, snapdex.ErrorMessage(nil))
}
