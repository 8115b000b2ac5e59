package harness

import (
	"github.com/roach88/nutridash/internal/dispatch"
)

// CycleTrace records one step's outcome.
type CycleTrace struct {
	Step int    `json:"step"`
	Seq  int64  `json:"seq,omitempty"`
	ID   string `json:"id,omitempty"`

	// Rejected holds the validation error of a rejected snapshot.
	Rejected string `json:"rejected,omitempty"`

	Status     string   `json:"status,omitempty"`
	Changed    []string `json:"changed"`
	Recomputed []string `json:"recomputed"`
	Faults     []string `json:"faults,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	Cycles []CycleTrace `json:"cycles"`

	Errors []string `json:"errors,omitempty"`

	// Slots is the final state of every output, in declaration order.
	Slots []dispatch.Slot `json:"slots"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cycles: []CycleTrace{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// slot returns the final slot for output.
func (r *Result) slot(output string) (dispatch.Slot, bool) {
	for _, s := range r.Slots {
		if string(s.Output) == output {
			return s, true
		}
	}
	return dispatch.Slot{}, false
}
