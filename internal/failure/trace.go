package failure

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one level of the call chain captured at failure time.
type Frame struct {
	File     string
	Line     int
	Function string
}

// Error is an error carrying the exit status of the failing operation and
// the call stack captured where the failure was first observed. Frames are
// stored innermost-first, exactly as the runtime produces them; the
// Reporter reverses them for display.
type Error struct {
	Status int
	Err    error
	Frames []Frame
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Status)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches the current call stack and an exit status to err. A nil err
// passes through unchanged. An err that already carries a stack keeps its
// original frames, so the trace always points at the first observation of
// the failure, not at a re-wrap higher up.
func Wrap(err error, status int) error {
	if err == nil {
		return nil
	}
	if traced, ok := err.(*Error); ok {
		return traced
	}
	return &Error{
		Status: status,
		Err:    err,
		Frames: capture(2),
	}
}

// Recovered converts a recovered panic value into a traced error. It is
// meant to be called directly from a deferred recover handler at the
// dispatch boundary.
func Recovered(v any) *Error {
	if traced, ok := v.(*Error); ok {
		return traced
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", v)
	}
	return &Error{
		Status: 1,
		Err:    err,
		Frames: capture(3),
	}
}

// capture walks the current goroutine's stack, skipping the given number of
// frames plus this function itself. The runtime's own dispatch frames
// (runtime.main, runtime.goexit and the testing harness) are not real user
// code and are dropped.
func capture(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}

	var frames []Frame
	iter := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := iter.Next()
		fn := fr.Function
		if fn == "runtime.main" || fn == "runtime.goexit" || strings.HasPrefix(fn, "testing.") {
			break
		}
		// Panic machinery (runtime.gopanic and friends) sits in the middle
		// of the stack during a recover; it is not user code but the
		// frames below it are, so skip rather than stop.
		if strings.HasPrefix(fn, "runtime.") {
			if !more {
				break
			}
			continue
		}
		frames = append(frames, Frame{
			File:     fr.File,
			Line:     fr.Line,
			Function: fn,
		})
		if !more {
			break
		}
	}
	return frames
}
