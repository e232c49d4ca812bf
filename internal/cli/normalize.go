package cli

import (
	"fmt"
	"strings"
)

// Normalize rewrites every declared long-form option in args into its
// short-form equivalent, preserving the relative order of all other
// arguments. `--name value` becomes `-n value` and `--name=value` becomes
// `-n value`. Arguments after a bare `--` terminator are left untouched.
// An undeclared long option is a user error and yields an ExitError.
func Normalize(g *Grammar, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "--") {
			out = append(out, arg)
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		name, value, hasValue := strings.Cut(name, "=")
		spec, ok := g.LookupLong(name)
		if !ok {
			return nil, &ExitError{Code: 1, Message: fmt.Sprintf("unknown option: --%s", name)}
		}
		if hasValue && !spec.TakesValue {
			return nil, &ExitError{Code: 1, Message: fmt.Sprintf("option --%s does not take a value", name)}
		}

		out = append(out, fmt.Sprintf("-%c", spec.Short))
		if hasValue {
			out = append(out, value)
		}
	}
	return out, nil
}
