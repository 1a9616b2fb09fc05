package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with module",
			err:      Configf("progress", "total must be >= 0, got %d", -5),
			expected: "purrgress/progress: total must be >= 0, got -5",
		},
		{
			name:     "without module",
			err:      New("", "stream closed", CategoryRender),
			expected: "purrgress: stream closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isConfig bool
		isState  bool
		isRender bool
		isEnv    bool
	}{
		{
			name:     "config",
			err:      Configf("progress", "empty frame set"),
			isConfig: true,
		},
		{
			name:    "state",
			err:     Statef("progress", "bar already closed"),
			isState: true,
		},
		{
			name:     "render",
			err:      Renderf("render", "write failed"),
			isRender: true,
		},
		{
			name:  "environment",
			err:   Environmentf("display", "probe panicked"),
			isEnv: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isConfig, IsConfig(tt.err))
			assert.Equal(t, tt.isState, IsState(tt.err))
			assert.Equal(t, tt.isRender, IsRender(tt.err))
			assert.Equal(t, tt.isEnv, IsEnvironment(tt.err))
		})
	}
}

func TestWrapPreservesCategory(t *testing.T) {
	orig := Statef("progress", "bar already closed")
	wrapped := Wrap(orig, "report", "update rejected")

	require.NotNil(t, wrapped)
	assert.Equal(t, CategoryState, wrapped.Category)
	assert.Equal(t, "report", wrapped.Module)
	assert.True(t, IsState(wrapped))
	assert.ErrorIs(t, wrapped, orig)
}

func TestWrapPlainError(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	wrapped := Wrap(cause, "render", "paint failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, CategoryRender, wrapped.Category)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "render", "ignored"))
}

func TestWithCause(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	err := Configf("frames", "theme file is not valid YAML").WithCause(cause)

	assert.True(t, IsConfig(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mapping values are not allowed")
}

func TestIsMatchesByCategoryAndModule(t *testing.T) {
	err := Renderf("render", "write failed")

	assert.ErrorIs(t, err, &Error{Category: CategoryRender})
	assert.ErrorIs(t, err, &Error{Category: CategoryRender, Module: "render"})
	assert.NotErrorIs(t, err, &Error{Category: CategoryRender, Module: "display"})
	assert.NotErrorIs(t, err, &Error{Category: CategoryState})
}

func TestGetModule(t *testing.T) {
	assert.Equal(t, "display", GetModule(Environmentf("display", "x")))
	assert.Equal(t, "", GetModule(errors.New("plain")))
}
