package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, 1, ExitCodeOf(errors.New("plain")))
	assert.Equal(t, 4, ExitCodeOf(New(4, "exec failed")))
	assert.Equal(t, 2, ExitCodeOf(fmt.Errorf("outer: %w", New(2, "tool missing"))))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 1, ExitCodeOf(New(0, "zero is not an error code")))
	assert.Equal(t, 1, ExitCodeOf(New(-3, "negative either")))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(2, "context", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "context: root cause", err.Error())
}
