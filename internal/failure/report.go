package failure

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
)

// Reporter renders a traced error as a human-readable failure report. It is
// the last line of defense: Report never panics and degrades to whatever
// information is available.
type Reporter struct {
	w        io.Writer
	colorize bool
}

// NewReporter returns a Reporter writing to w. When colorize is set the
// report header is highlighted; keep it off for non-terminal streams.
func NewReporter(w io.Writer, colorize bool) *Reporter {
	return &Reporter{w: w, colorize: colorize}
}

// Report writes the failure report for err. The report contains the exit
// status, the origin of the failure, and the call chain rendered
// outermost-first, each frame annotated with the literal source line when
// the source file is still readable. Errors without a captured stack are
// reported as a bare message.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}

	traced, ok := err.(*Error)
	if !ok {
		fmt.Fprintf(r.w, "%s %v\n", r.header("error:"), err)
		return
	}

	origin := "unknown location"
	if len(traced.Frames) > 0 {
		deepest := traced.Frames[0]
		origin = fmt.Sprintf("%s:%d", deepest.File, deepest.Line)
	}
	fmt.Fprintf(r.w, "%s %v\n", r.header("error:"), traced.Err)
	fmt.Fprintf(r.w, "status %d at %s\n", traced.Status, origin)

	// Frames are captured innermost-first; the narrative reads
	// outermost-first, caller before callee.
	for i := len(traced.Frames) - 1; i >= 0; i-- {
		fr := traced.Frames[i]
		fmt.Fprintf(r.w, "  in %s (%s:%d)\n", fr.Function, fr.File, fr.Line)
		if line, ok := sourceLine(fr.File, fr.Line); ok {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
	}
}

// header formats the report prefix, highlighted when color is enabled.
func (r *Reporter) header(s string) string {
	if r.colorize {
		return color.Red.Render(s)
	}
	return s
}

// sourceLine re-reads file and returns the trimmed text of the given
// 1-based line. Lookup is best-effort: any read failure or out-of-range
// line reports false and the annotation is omitted.
func sourceLine(file string, line int) (string, bool) {
	if line <= 0 {
		return "", false
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return "", false
	}
	text := strings.TrimRight(strings.TrimLeft(lines[line-1], " \t"), "\r")
	if text == "" {
		return "", false
	}
	return text, true
}
