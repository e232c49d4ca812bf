package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexion/cliscaffold/internal/cli"
)

// resolve parses args against the sample grammar and runs the precedence
// chain, failing the test on parse errors.
func resolve(t *testing.T, args, environ []string) (*Config, error) {
	t.Helper()
	res, err := cli.Parse(Grammar(), args)
	require.NoError(t, err)
	return Resolve(res, environ)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "word.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestResolve_PrecedenceChain(t *testing.T) {
	t.Parallel()

	filePath := writeConfig(t, "word = \"from-file\"\nrepeat = 5\n")

	testCases := []struct {
		name    string
		args    []string
		environ []string
		want    Config
	}{
		{
			name: "compiled defaults only",
			want: Config{Word: "bird", Repeat: 1, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name:    "flag beats environment",
			args:    []string{"--word", "from-flag"},
			environ: []string{"WORD=from-env"},
			want:    Config{Word: "from-flag", Repeat: 1, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name:    "environment beats config file",
			args:    []string{"-c", filePath},
			environ: []string{"WORD=from-env"},
			want:    Config{Word: "from-env", Repeat: 5, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name: "config file beats default",
			args: []string{"-c", filePath},
			want: Config{Word: "from-file", Repeat: 5, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name:    "config file found through environment",
			environ: []string{"WORD_CONFIG=" + filePath},
			want:    Config{Word: "from-file", Repeat: 5, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name: "verbose flag forces debug level",
			args: []string{"-v"},
			want: Config{Word: "bird", Repeat: 1, LibDir: "lib", LogLevel: "debug", LogFormat: "text"},
		},
		{
			name:    "log settings from environment",
			environ: []string{"WORD_LOG_LEVEL=warn", "WORD_LOG_FORMAT=json"},
			want:    Config{Word: "bird", Repeat: 1, LibDir: "lib", LogLevel: "warn", LogFormat: "json"},
		},
		{
			name:    "repeat count from environment",
			environ: []string{"WORD_REPEAT=3"},
			want:    Config{Word: "bird", Repeat: 3, LibDir: "lib", LogLevel: "info", LogFormat: "text"},
		},
		{
			name:    "color switch from environment",
			environ: []string{"WORD_COLOR=yes"},
			want:    Config{Word: "bird", Repeat: 1, LibDir: "lib", LogLevel: "info", LogFormat: "text", Color: true},
		},
		{
			name: "color flag",
			args: []string{"-C"},
			want: Config{Word: "bird", Repeat: 1, LibDir: "lib", LogLevel: "info", LogFormat: "text", Color: true},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := resolve(t, tc.args, tc.environ)
			require.NoError(t, err)
			if diff := cmp.Diff(&tc.want, cfg); diff != "" {
				t.Errorf("resolved config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_ConfigFileInterpolatesEnvironment(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "word = env.GREETING\n")
	cfg, err := resolve(t, []string{"-c", path}, []string{"GREETING=ahoy"})
	require.NoError(t, err)
	assert.Equal(t, "ahoy", cfg.Word)
}

func TestResolve_UserErrors(t *testing.T) {
	t.Parallel()

	malformed := writeConfig(t, "word = \"unterminated\nrepeat {\n")

	testCases := []struct {
		name    string
		args    []string
		environ []string
	}{
		{name: "non-numeric repeat flag", args: []string{"-n", "many"}},
		{name: "zero repeat flag", args: []string{"-n", "0"}},
		{name: "non-numeric repeat env", environ: []string{"WORD_REPEAT=lots"}},
		{name: "invalid log level", environ: []string{"WORD_LOG_LEVEL=loud"}},
		{name: "invalid log format", environ: []string{"WORD_LOG_FORMAT=xml"}},
		{name: "missing config file", args: []string{"-c", "/no/such/file.hcl"}},
		{name: "malformed config file", args: []string{"-c", malformed}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := resolve(t, tc.args, tc.environ)
			require.Error(t, err)
			exitErr, ok := err.(*cli.ExitError)
			require.True(t, ok, "user errors must be ExitError, got %T", err)
			assert.Equal(t, 1, exitErr.Code)
		})
	}
}
