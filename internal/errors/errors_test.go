package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FormatsMessageAndSuggestion(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'cgtop init' first.")

	msg := err.Error()
	assert.Contains(t, msg, "✗ Config file not found")
	assert.Contains(t, msg, "Run 'cgtop init' first.")
	assert.Equal(t, ErrConfig, err.Code)
}

func TestWrap_DefaultsToCollectCode(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(cause, "Failed to read cgroup stats")

	assert.Equal(t, ErrCollect, err.Code)
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := stderrors.New("directory not empty")
	err := WrapWithCode(cause, ErrRemove, "Delete failed", "Kill remaining processes first.")

	assert.Equal(t, ErrRemove, err.Code)
	assert.Contains(t, err.Error(), "Delete failed")
	assert.Contains(t, err.Error(), "directory not empty")
	assert.Contains(t, err.Error(), "Kill remaining processes first.")
}

func TestIsCode(t *testing.T) {
	err := New(ErrRemove, "nope", "")

	assert.True(t, IsCode(err, ErrRemove))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrRemove))
	assert.False(t, IsCode(stderrors.New("plain"), ErrRemove))
}

func TestIsCode_Wrapped(t *testing.T) {
	inner := New(ErrCollect, "inner", "")
	outer := stderrors.Join(stderrors.New("outer"), inner)

	assert.True(t, IsCode(outer, ErrCollect))
}
