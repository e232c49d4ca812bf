// Package failure is the terminal error boundary for the scaffold. It
// captures the call stack at the point where a failure is first observed,
// carries it on the propagated error value, and renders a readable trace
// to the error stream when the program gives up.
//
// The capture and the rendering are deliberately split: Wrap/Recovered run
// deep inside business code and must stay cheap, while the Reporter runs
// exactly once, at the edge of the process, and is allowed to re-read
// source files to annotate each frame with the offending line.
package failure
