// Package executor runs HEC-RAS solver processes and captures their output.
//
// An Executor owns one execution backend (local process, Docker container,
// or Kubernetes Job). Execute runs a single plan and returns an Execution
// holding the exit state, the captured process output, and the
// compute-message text the solver produced. Execute returns an error only
// when the solver could not be run at all; a run that finished with a
// nonzero exit or with solver error lines is a valid Execution whose
// outcome is determined by parsing its messages.
package executor
