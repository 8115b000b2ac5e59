package harness

import (
	"context"
	"fmt"

	"github.com/roach88/nutridash/internal/config"
	"github.com/roach88/nutridash/internal/dispatch"
)

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh dataset and Dispatcher with fixed cycle IDs.
// Steps are dispatched synchronously in order. An error is returned only
// when the scenario itself cannot be set up (bad dataset or config);
// failed expectations are reported on the Result.
func Run(scenario *Scenario) (*Result, error) {
	ds, err := scenario.dataset()
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}

	cfg, err := config.LoadBytes(scenario.Name+".cue", configSource(scenario.Config))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("failed to build bindings: %w", err)
	}

	ids := scenario.CycleIDs
	if len(ids) == 0 {
		ids = defaultCycleIDs(len(scenario.Steps))
	}
	d, err := dispatch.New(ds, bindings, dispatch.WithIDGenerator(dispatch.NewFixedGenerator(ids...)))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		trace := CycleTrace{Step: i + 1, Changed: []string{}, Recomputed: []string{}}

		cycle, err := d.Dispatch(ctx, step.input(ds))
		if err != nil {
			trace.Rejected = err.Error()
		} else {
			trace.Seq = cycle.Seq
			trace.ID = cycle.ID
			if cycle.Status != 0 {
				trace.Status = cycle.Status.String()
			}
			for _, c := range cycle.Changed {
				trace.Changed = append(trace.Changed, string(c))
			}
			for _, o := range cycle.Recomputed {
				trace.Recomputed = append(trace.Recomputed, string(o))
			}
			for _, f := range cycle.Faults {
				trace.Faults = append(trace.Faults, f.Error())
			}
		}
		result.Cycles = append(result.Cycles, trace)

		if step.Expect != nil {
			for _, msg := range checkStep(trace, step.Expect) {
				result.AddError(fmt.Sprintf("step %d: %s", i+1, msg))
			}
		}
	}

	result.Slots = d.Slots()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func configSource(src string) []byte {
	if src == "" {
		return nil
	}
	return []byte(src)
}

func defaultCycleIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("cycle-%d", i+1)
	}
	return ids
}

// checkStep compares one cycle trace with its expectations.
func checkStep(trace CycleTrace, want *StepExpect) []string {
	var errs []string

	rejected := trace.Rejected != ""
	if rejected != want.Rejected {
		if rejected {
			errs = append(errs, fmt.Sprintf("snapshot rejected: %s", trace.Rejected))
		} else {
			errs = append(errs, "expected snapshot to be rejected")
		}
		return errs
	}
	if rejected {
		return nil
	}

	if want.Status != "" && want.Status != trace.Status {
		errs = append(errs, fmt.Sprintf("status = %q, want %q", trace.Status, want.Status))
	}
	if want.Changed != nil && !equalStrings(trace.Changed, want.Changed) {
		errs = append(errs, fmt.Sprintf("changed = %v, want %v", trace.Changed, want.Changed))
	}
	if want.Recomputed != nil && !equalStrings(trace.Recomputed, want.Recomputed) {
		errs = append(errs, fmt.Sprintf("recomputed = %v, want %v", trace.Recomputed, want.Recomputed))
	}
	return errs
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
