// Package messages parses HEC-RAS compute messages into structured summaries.
//
// Compute messages are the free-text log blocks the solver embeds in its
// result files (or companion log files) describing per-task timings and the
// completion/error status of a run. The text format varies across solver
// versions and is occasionally inconsistent, so every parser in this package
// degrades to partial results instead of returning an error: a field that
// cannot be extracted is simply left unset.
//
// All functions are pure and stateless. They only read their input string and
// allocate local state, so they are safe to call concurrently from any number
// of goroutines without coordination.
package messages
