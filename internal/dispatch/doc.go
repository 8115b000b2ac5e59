// Package dispatch implements the reactive dispatcher that binds dashboard
// inputs to view outputs.
//
// ARCHITECTURE:
//
// Dependency table:
// Every output declares the inputs it reads (a Binding). On each input
// snapshot the dispatcher diffs the validated criteria against the previous
// snapshot and re-runs only the generators whose declared inputs changed.
// Untouched outputs keep their last artifact.
//
// Cycle processing:
//  1. Validate the raw input into filter.Criteria (rejects malformed ranges)
//  2. Diff against the previous criteria to find changed inputs
//  3. Filter once per cycle, lazily, only if an affected output needs it
//  4. Run affected generators in declaration order
//  5. Record each output's artifact and state
//
// A generator that panics or returns an error is isolated: its output moves
// to OutputError with an error artifact, siblings are unaffected.
//
// Single-writer loop:
// Dispatch is synchronous. Run drains a FIFO queue from one goroutine so one
// snapshot is fully processed before the next is accepted; the most recent
// snapshot always determines the final state.
package dispatch
