package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flexion/cliscaffold/internal/app"
	"github.com/flexion/cliscaffold/internal/ctxlog"
	"github.com/flexion/cliscaffold/internal/failure"
)

// doc is the program's annotated documentation block, the text the usage
// synthesizer scans for the overview.
const doc = `## @file word
## @brief prints the configured word; the scaffold's sample program
## @author flexion
## @note the word resolves flag > environment > config file > default

## anything after the blank line stays out of the overview.
`

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:], os.Environ()))
}

// run encapsulates the whole program for testing: streams in, exit code
// out, no process state touched.
func run(stdout, stderr io.Writer, args, environ []string) int {
	a := app.New("word", version, doc, stdout, stderr, sayWord)
	return a.Main(context.Background(), args, environ)
}

// sayWord is the sample business logic: print the resolved word the
// resolved number of times.
func sayWord(ctx context.Context, cfg *app.Config, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("saying the word", "word", cfg.Word, "repeat", cfg.Repeat)

	for i := 0; i < cfg.Repeat; i++ {
		if _, err := fmt.Fprintf(stdout, "the word is: %s\n", cfg.Word); err != nil {
			return failure.Wrap(err, 1)
		}
	}
	return nil
}
