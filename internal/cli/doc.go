// Package cli implements the scaffold's option grammar and argument
// dispatch. A program declares its flags once, as a Grammar of OptionSpec
// rows; the same declaration drives long-to-short normalization, the
// getopts-style parse loop, and the synthesized usage table, so the parser
// and the help text cannot drift apart. Process-level concerns (exit
// codes) are carried on ExitError values rather than calls to os.Exit.
package cli
