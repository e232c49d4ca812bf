package cli

import (
	"fmt"
)

// OptionSpec declares one recognized flag: its single-letter short form,
// an optional long-form alias, whether it consumes a value, and the
// one-line description shown in the usage table.
type OptionSpec struct {
	Short       byte
	Long        string
	TakesValue  bool
	Description string
}

// Grammar is the ordered registry of a program's flags. Every program gets
// -h/--help for free; everything else is declared with Add. The zero value
// is not usable, construct with NewGrammar.
type Grammar struct {
	opts    []OptionSpec
	byShort map[byte]int
	byLong  map[string]int
}

// HelpShort is the short form of the always-present help flag.
const HelpShort byte = 'h'

// NewGrammar returns a Grammar pre-populated with the help flag.
func NewGrammar() *Grammar {
	g := &Grammar{
		byShort: make(map[byte]int),
		byLong:  make(map[string]int),
	}
	g.Add(OptionSpec{Short: HelpShort, Long: "help", Description: "show this help and exit"})
	return g
}

// Add registers a flag. Duplicate short or long forms and malformed specs
// are programmer errors, not user input, so Add panics on them. It returns
// the Grammar for chaining.
func (g *Grammar) Add(spec OptionSpec) *Grammar {
	if !isFlagLetter(spec.Short) {
		panic(fmt.Sprintf("cli: short form %q is not a letter or digit", spec.Short))
	}
	if _, dup := g.byShort[spec.Short]; dup {
		panic(fmt.Sprintf("cli: short form -%c declared twice", spec.Short))
	}
	if spec.Long != "" {
		if _, dup := g.byLong[spec.Long]; dup {
			panic(fmt.Sprintf("cli: long form --%s declared twice", spec.Long))
		}
		g.byLong[spec.Long] = len(g.opts)
	}
	g.byShort[spec.Short] = len(g.opts)
	g.opts = append(g.opts, spec)
	return g
}

// Options returns the declared specs in registration order. The returned
// slice is shared; callers must not mutate it.
func (g *Grammar) Options() []OptionSpec {
	return g.opts
}

// LookupShort finds the spec registered for the given short form.
func (g *Grammar) LookupShort(short byte) (OptionSpec, bool) {
	i, ok := g.byShort[short]
	if !ok {
		return OptionSpec{}, false
	}
	return g.opts[i], true
}

// LookupLong finds the spec registered for the given long form.
func (g *Grammar) LookupLong(long string) (OptionSpec, bool) {
	i, ok := g.byLong[long]
	if !ok {
		return OptionSpec{}, false
	}
	return g.opts[i], true
}

func isFlagLetter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return false
}
