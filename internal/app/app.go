package app

import (
	"context"
	"fmt"
	"io"

	"github.com/flexion/cliscaffold/internal/cli"
	"github.com/flexion/cliscaffold/internal/ctxlog"
	"github.com/flexion/cliscaffold/internal/docdir"
	"github.com/flexion/cliscaffold/internal/failure"
	"github.com/flexion/cliscaffold/internal/usage"
)

// RunFunc is the business logic an App dispatches to once flags are
// parsed and configuration is resolved.
type RunFunc func(ctx context.Context, cfg *Config, stdout io.Writer) error

// App ties the scaffold together for one program: its name, version and
// annotated doc text, the two output streams, and the business callback.
type App struct {
	name    string
	version string
	doc     string
	stdout  io.Writer
	stderr  io.Writer
	run     RunFunc
}

// New constructs an App. The doc text is the program's own annotated
// documentation block, the source the usage synthesizer scans.
func New(name, version, doc string, stdout, stderr io.Writer, run RunFunc) *App {
	return &App{
		name:    name,
		version: version,
		doc:     doc,
		stdout:  stdout,
		stderr:  stderr,
		run:     run,
	}
}

// Main dispatches one invocation and returns the process exit code.
// Streams follow the scaffold convention: help and normal output on
// stdout; error messages, error-path usage text and failure traces on
// stderr. The failure reporter is armed before any fallible work, so a
// panic anywhere below renders a trace instead of a raw Go crash.
func (a *App) Main(ctx context.Context, args, environ []string) (code int) {
	reporter := failure.NewReporter(a.stderr, false)
	defer func() {
		if r := recover(); r != nil {
			reporter.Report(failure.Recovered(r))
			code = 1
		}
	}()

	grammar := Grammar()
	res, err := cli.Parse(grammar, args)
	if err != nil {
		return a.usageError(err, grammar, nil, environ)
	}

	if res.Help {
		if err := usage.Synthesize(a.stdout, a.name, a.scannableDoc(res, environ), grammar); err != nil {
			fmt.Fprintf(a.stderr, "%s: %v\n", a.name, err)
			return 1
		}
		return 0
	}
	if res.Seen['V'] {
		fmt.Fprintf(a.stdout, "%s version %s\n", a.name, a.version)
		return 0
	}

	cfg, err := Resolve(res, environ)
	if err != nil {
		return a.usageError(err, grammar, res, environ)
	}

	reporter = failure.NewReporter(a.stderr, cfg.Color)
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, a.stderr)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("configuration resolved", "word", cfg.Word, "repeat", cfg.Repeat, "lib_dir", cfg.LibDir)

	if err := a.run(ctx, cfg, a.stdout); err != nil {
		reporter.Report(failure.Wrap(err, 1))
		return 1
	}
	return 0
}

// usageError reports a user mistake: the message and the synthesized
// usage text both go to stderr, and the mapped exit code comes back.
func (a *App) usageError(err error, g *cli.Grammar, res *cli.Result, environ []string) int {
	fmt.Fprintf(a.stderr, "%s: %v\n", a.name, err)
	// Best effort; a failed synthesis must not mask the real error.
	_ = usage.Synthesize(a.stderr, a.name, a.scannableDoc(res, environ), g)
	if exitErr, ok := err.(*cli.ExitError); ok {
		return exitErr.Code
	}
	return 1
}

// scannableDoc assembles the documentation the usage synthesizer scans:
// the program's own doc text plus any fragments auto-loaded from the lib
// directory. Fragment loading is best-effort; the help path never fails
// because a fragment is unreadable.
func (a *App) scannableDoc(res *cli.Result, environ []string) string {
	if res == nil {
		res = &cli.Result{}
	}

	libDir := defaults.LibDir
	if cfg, err := Resolve(res, environ); err == nil {
		libDir = cfg.LibDir
	}

	doc := a.doc
	if fragments, err := docdir.Load(libDir); err == nil && fragments != "" {
		doc += "\n" + fragments
	}
	return doc
}
