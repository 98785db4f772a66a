// Package result defines the value types returned by plan execution.
//
// The wrapper types (ComputeResult, ComputeParallelResult, RasControlResult)
// preserve the legacy contract of earlier releases, where run operations
// returned a bare boolean, a plan-to-success map, or a (success, messages)
// pair. Each wrapper keeps that shape reachable through explicit methods
// while additionally carrying the structured results table derived from the
// solver's compute messages. A missing table or row is a degraded but
// successful state: extraction can be skipped (for example when a custom
// destination folder bypasses the normal result layout) without turning the
// run into a failure.
//
// Wrappers are constructed once at the end of an execution attempt and are
// not mutated afterwards.
package result
