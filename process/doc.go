// Package process runs a named set of Actions under a pluggable Logic
// component - a dependency-ordered workflow or a conditional-transition
// state machine - exposing a controllable Execution handle that resolves
// with accumulated results or rejects with a decorated error.
//
// A Process is built once with New and may be Start-ed any number of
// times; each Start spawns an independent invocation with its own
// Context, sharing only the Action and Logic definitions.
package process
