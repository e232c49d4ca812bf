package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/flexion/cliscaffold/internal/cli"
)

// Config is the fully resolved configuration for one invocation. It is
// built exactly once by Resolve and passed by reference from there on;
// nothing reads the environment ambiently after resolution.
type Config struct {
	Word      string
	Repeat    int
	LibDir    string
	LogLevel  string
	LogFormat string
	Color     bool
}

// Environment variable names recognized by the precedence chain.
const (
	EnvWord      = "WORD"
	EnvRepeat    = "WORD_REPEAT"
	EnvLibDir    = "WORD_LIB_DIR"
	EnvConfig    = "WORD_CONFIG"
	EnvLogLevel  = "WORD_LOG_LEVEL"
	EnvLogFormat = "WORD_LOG_FORMAT"
	EnvColor     = "WORD_COLOR"
)

// defaults are the compiled-in values, the lowest rung of the chain.
var defaults = Config{
	Word:      "bird",
	Repeat:    1,
	LibDir:    "lib",
	LogLevel:  "info",
	LogFormat: "text",
}

// Grammar declares the sample program's flag surface. The same declaration
// drives parsing, normalization and the synthesized usage table.
func Grammar() *cli.Grammar {
	return cli.NewGrammar().
		Add(cli.OptionSpec{Short: 'w', Long: "word", TakesValue: true, Description: "set the word"}).
		Add(cli.OptionSpec{Short: 'n', Long: "repeat", TakesValue: true, Description: "repeat the word n times"}).
		Add(cli.OptionSpec{Short: 'l', Long: "lib-dir", TakesValue: true, Description: "directory of documentation fragments"}).
		Add(cli.OptionSpec{Short: 'c', Long: "config", TakesValue: true, Description: "path to an HCL config file"}).
		Add(cli.OptionSpec{Short: 'C', Long: "color", Description: "colorize failure reports"}).
		Add(cli.OptionSpec{Short: 'v', Long: "verbose", Description: "enable debug logging"}).
		Add(cli.OptionSpec{Short: 'V', Long: "version", Description: "print version and exit"})
}

// fileConfig is the HCL shape of an optional config file. Every attribute
// is optional; absent attributes simply fall through to the defaults.
type fileConfig struct {
	Word      *string `hcl:"word,optional"`
	Repeat    *int    `hcl:"repeat,optional"`
	LibDir    *string `hcl:"lib_dir,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
	Color     *bool   `hcl:"color,optional"`
}

// Resolve materializes the Config for this invocation from the parsed
// flags, the process environment (as an os.Environ-style slice), and an
// optional HCL config file. Precedence per field: explicit flag, then
// environment variable, then config file, then compiled default. User
// mistakes (a bad count, an unreadable config file) come back as
// cli.ExitError.
func Resolve(res *cli.Result, environ []string) (*Config, error) {
	env := environMap(environ)

	path := res.Value('c', env[EnvConfig])
	fc, err := loadFile(path, env)
	if err != nil {
		return nil, err
	}

	cfg := defaults
	cfg.Word = pickString(res, 'w', env, EnvWord, fc.Word, defaults.Word)
	cfg.LibDir = pickString(res, 'l', env, EnvLibDir, fc.LibDir, defaults.LibDir)
	cfg.LogLevel = pickString(res, 0, env, EnvLogLevel, fc.LogLevel, defaults.LogLevel)
	cfg.LogFormat = pickString(res, 0, env, EnvLogFormat, fc.LogFormat, defaults.LogFormat)

	if res.Seen['v'] {
		cfg.LogLevel = "debug"
	}

	cfg.Repeat, err = pickRepeat(res, env, fc)
	if err != nil {
		return nil, err
	}

	cfg.Color = res.Seen['C']
	if !cfg.Color {
		if v, ok := env[EnvColor]; ok {
			cfg.Color = isTruthy(v)
		} else if fc.Color != nil {
			cfg.Color = *fc.Color
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// pickString walks the precedence chain for one string field. A zero
// short form means the field has no flag.
func pickString(res *cli.Result, short byte, env map[string]string, envName string, fileVal *string, def string) string {
	if short != 0 && res.Seen[short] {
		return res.Values[short]
	}
	if v, ok := env[envName]; ok && v != "" {
		return v
	}
	if fileVal != nil {
		return *fileVal
	}
	return def
}

// pickRepeat resolves the repeat count, which needs parsing on the flag
// and environment rungs.
func pickRepeat(res *cli.Result, env map[string]string, fc *fileConfig) (int, error) {
	raw := ""
	switch {
	case res.Seen['n']:
		raw = res.Values['n']
	case env[EnvRepeat] != "":
		raw = env[EnvRepeat]
	case fc.Repeat != nil:
		return *fc.Repeat, nil
	default:
		return defaults.Repeat, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid repeat count: %q", raw)}
	}
	return n, nil
}

// validate rejects values no rung of the chain should have produced.
func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid log level: %q", cfg.LogLevel)}
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid log format: %q", cfg.LogFormat)}
	}
	if cfg.Repeat < 1 {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid repeat count: %d", cfg.Repeat)}
	}
	return nil
}

// loadFile parses an optional HCL config file. The file body is evaluated
// with an `env` object in scope, so files can interpolate environment
// values (`word = env.USER`). An empty path means the convention is not in
// use; a named-but-missing or malformed file is a user error.
func loadFile(path string, env map[string]string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &cli.ExitError{Code: 1, Message: fmt.Sprintf("config file %s: %s", path, diags.Error())}
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": environObject(env)},
	}
	if diags := gohcl.DecodeBody(file.Body, evalCtx, fc); diags.HasErrors() {
		return nil, &cli.ExitError{Code: 1, Message: fmt.Sprintf("config file %s: %s", path, diags.Error())}
	}
	return fc, nil
}

// environMap splits an os.Environ-style slice into a lookup map.
func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// environObject exposes the environment to HCL expressions as a single
// object value.
func environObject(env map[string]string) cty.Value {
	if len(env) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}

// isTruthy interprets the usual affirmative spellings of an environment
// switch.
func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
