package failure

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_RendersFramesOutermostFirst(t *testing.T) {
	t.Parallel()

	traced := &Error{
		Status: 2,
		Err:    errors.New("wordlist missing"),
		Frames: []Frame{
			{File: "/src/spell.go", Line: 80, Function: "main.spell"},
			{File: "/src/run.go", Line: 58, Function: "main.run"},
		},
	}

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(traced)
	got := out.String()

	assert.Contains(t, got, "error: wordlist missing")
	assert.Contains(t, got, "status 2 at /src/spell.go:80")

	// Caller before callee: main.run must be printed before main.spell.
	runIdx := strings.Index(got, "in main.run (/src/run.go:58)")
	spellIdx := strings.Index(got, "in main.spell (/src/spell.go:80)")
	require.GreaterOrEqual(t, runIdx, 0)
	require.GreaterOrEqual(t, spellIdx, 0)
	assert.Less(t, runIdx, spellIdx)
}

func TestReport_AnnotatesFramesWithSourceLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "spell.go")
	content := "package main\n\nfunc spell() error {\n\treturn errTrip\n}\n"
	require.NoError(t, os.WriteFile(src, []byte(content), 0600))

	traced := &Error{
		Status: 1,
		Err:    errors.New("tripped"),
		Frames: []Frame{{File: src, Line: 4, Function: "main.spell"}},
	}

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(traced)

	assert.Contains(t, out.String(), "\treturn errTrip\n")
}

func TestReport_OmitsAnnotationsWhenSourceUnreadable(t *testing.T) {
	t.Parallel()

	traced := &Error{
		Status: 1,
		Err:    errors.New("tripped"),
		Frames: []Frame{
			{File: "/does/not/exist.go", Line: 12, Function: "main.spell"},
			{File: "/does/not/exist.go", Line: 30, Function: "main.run"},
		},
	}

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(traced)
	got := out.String()

	// Status, location and the frame list still appear; only the literal
	// source-line annotations are dropped.
	assert.Contains(t, got, "status 1 at /does/not/exist.go:12")
	assert.Contains(t, got, "in main.run (/does/not/exist.go:30)")
	assert.Contains(t, got, "in main.spell (/does/not/exist.go:12)")
	assert.NotContains(t, got, "\t")
}

func TestReport_PlainErrorsWithoutStack(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(errors.New("flat failure"))

	assert.Equal(t, "error: flat failure\n", out.String())
}

func TestReport_NilIsSilent(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(nil)
	assert.Empty(t, out.String())
}

func TestReport_EmptyFrameListStillReportsStatus(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	NewReporter(out, false).Report(&Error{Status: 7, Err: errors.New("no frames")})
	got := out.String()

	assert.Contains(t, got, "error: no frames")
	assert.Contains(t, got, "status 7 at unknown location")
}

func TestReport_LiveCaptureEndToEnd(t *testing.T) {
	t.Parallel()

	err := tripOuter()
	out := &bytes.Buffer{}
	NewReporter(out, false).Report(err)
	got := out.String()

	// The trace must read caller before callee down the real chain, and
	// since these frames point at this test's own source, the literal
	// lines are annotated too.
	outerIdx := strings.Index(got, "tripOuter")
	innerIdx := strings.Index(got, fmt.Sprintf("tripInner (%s", err.(*Error).Frames[0].File))
	require.GreaterOrEqual(t, outerIdx, 0)
	require.GreaterOrEqual(t, innerIdx, 0)
	assert.Less(t, outerIdx, innerIdx)
	assert.Contains(t, got, "return Wrap(errors.New(\"broken\"), 3)")
}
