package cli

import (
	"fmt"
)

// ExitError is an error carrying the process exit code the failure maps
// to. The dispatcher translates it at the very edge of the program.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Result is the post-parse state of an invocation: which flags were seen,
// the value each value-taking flag received, whether help was requested,
// and the positional remainder.
type Result struct {
	Seen   map[byte]bool
	Values map[byte]string
	Help   bool
	Rest   []string
}

// Value returns the value parsed for the given short form, or fallback if
// the flag was not seen.
func (r *Result) Value(short byte, fallback string) string {
	if v, ok := r.Values[short]; ok {
		return v
	}
	return fallback
}

// Parse runs the full dispatch convention over args: long forms are first
// normalized to their short equivalents, then consumed by a getopts-style
// loop against the declared grammar. Clustered boolean flags (-abc) and
// attached values (-wvalue) are accepted. Parsing stops at the first
// positional argument or at a bare `--`; everything after lands in Rest.
// Unknown flags and missing values yield an ExitError with code 1.
func Parse(g *Grammar, args []string) (*Result, error) {
	norm, err := Normalize(g, args)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Seen:   make(map[byte]bool),
		Values: make(map[byte]string),
	}

	i := 0
	for i < len(norm) {
		arg := norm[i]
		if arg == "--" {
			i++
			break
		}
		// A lone dash is positional by convention (stdin placeholder).
		if len(arg) < 2 || arg[0] != '-' {
			break
		}

		cluster := arg[1:]
		for j := 0; j < len(cluster); j++ {
			short := cluster[j]
			spec, ok := g.LookupShort(short)
			if !ok {
				return nil, &ExitError{Code: 1, Message: fmt.Sprintf("unknown option: -%c", short)}
			}
			res.Seen[short] = true
			if short == HelpShort {
				res.Help = true
			}
			if !spec.TakesValue {
				continue
			}

			// A value-taking flag consumes the rest of the cluster, or
			// failing that the next argument.
			if j+1 < len(cluster) {
				res.Values[short] = cluster[j+1:]
				break
			}
			i++
			if i >= len(norm) {
				return nil, &ExitError{Code: 1, Message: fmt.Sprintf("option -%c requires a value", short)}
			}
			res.Values[short] = norm[i]
		}
		i++
	}

	res.Rest = append(res.Rest, norm[i:]...)
	return res, nil
}
