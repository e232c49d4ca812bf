// Package app composes the scaffold into a runnable program: it declares
// the sample flag surface, resolves configuration through the precedence
// chain (explicit flag > environment > config file > compiled default),
// wires the logger, and dispatches between the help, version, error and
// business paths. The failure reporter is installed before any fallible
// work begins.
package app
