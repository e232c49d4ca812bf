// Package usage synthesizes help text instead of maintaining it by hand.
//
// The overview half is a scanner: it extracts the documentation block that
// opens a program's annotated doc text (the `## @file` convention carried
// over from the shell world) and translates a fixed set of structural tags
// into plain labels. The option half is generated from the same Grammar
// the parser consumes, so the table can never disagree with what the
// program actually accepts. Synthesis is pure: nothing is cached, and the
// same inputs always render byte-identical output.
package usage
