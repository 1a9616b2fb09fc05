package display

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectResolution(t *testing.T) {
	tests := []struct {
		name     string
		notebook bool
		terminal bool
		expected Surface
	}{
		{name: "notebook wins over terminal", notebook: true, terminal: true, expected: SurfaceNotebook},
		{name: "notebook without terminal", notebook: true, terminal: false, expected: SurfaceNotebook},
		{name: "terminal only", notebook: false, terminal: true, expected: SurfaceANSI},
		{name: "neither", notebook: false, terminal: false, expected: SurfaceStatic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(&bytes.Buffer{},
				WithNotebookCheck(func() bool { return tt.notebook }),
				WithTerminalCheck(func(io.Writer) bool { return tt.terminal }),
			)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		got := Detect(&bytes.Buffer{},
			WithNotebookCheck(func() bool { return false }),
			WithTerminalCheck(func(io.Writer) bool { return true }),
		)
		assert.Equal(t, SurfaceANSI, got)
	}
}

func TestDetectSwallowsPanics(t *testing.T) {
	got := Detect(&bytes.Buffer{},
		WithNotebookCheck(func() bool { panic("kernel introspection exploded") }),
		WithTerminalCheck(func(io.Writer) bool { panic("no fd") }),
	)
	assert.Equal(t, SurfaceStatic, got)
}

func TestDetectPanickingNotebookFallsThrough(t *testing.T) {
	got := Detect(&bytes.Buffer{},
		WithNotebookCheck(func() bool { panic("boom") }),
		WithTerminalCheck(func(io.Writer) bool { return true }),
	)
	assert.Equal(t, SurfaceANSI, got)
}

func TestIsTerminalOnPlainWriter(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(io.Discard))
}

func TestWidthFallbacks(t *testing.T) {
	t.Run("columns env", func(t *testing.T) {
		t.Setenv("COLUMNS", "132")
		assert.Equal(t, 132, Width(&bytes.Buffer{}))
	})

	t.Run("bad env falls back to default", func(t *testing.T) {
		t.Setenv("COLUMNS", "not-a-number")
		assert.Equal(t, 80, Width(&bytes.Buffer{}))
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("COLUMNS", "")
		assert.Equal(t, 80, Width(&bytes.Buffer{}))
	})
}

func TestSurfaceString(t *testing.T) {
	assert.Equal(t, "auto", SurfaceAuto.String())
	assert.Equal(t, "notebook", SurfaceNotebook.String())
	assert.Equal(t, "ansi", SurfaceANSI.String())
	assert.Equal(t, "static", SurfaceStatic.String())
	assert.Equal(t, "unknown", Surface(42).String())
}

func TestParseSurface(t *testing.T) {
	assert.Equal(t, SurfaceANSI, ParseSurface("ansi"))
	assert.Equal(t, SurfaceNotebook, ParseSurface("notebook"))
	assert.Equal(t, SurfaceStatic, ParseSurface("static"))
	assert.Equal(t, SurfaceAuto, ParseSurface("auto"))
	assert.Equal(t, SurfaceAuto, ParseSurface("nonsense"))
}
