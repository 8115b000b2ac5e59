package dispatch

import (
	"errors"
	"fmt"
)

// GeneratorFault reports a generator that panicked or returned an error.
// It is confined to one output and never aborts a cycle.
type GeneratorFault struct {
	Output  OutputID
	CycleID string
	Cause   error
}

func (e *GeneratorFault) Error() string {
	return fmt.Sprintf("generator %s faulted (cycle=%s): %v", e.Output, e.CycleID, e.Cause)
}

func (e *GeneratorFault) Unwrap() error {
	return e.Cause
}

// IsGeneratorFault reports whether err wraps a GeneratorFault.
func IsGeneratorFault(err error) bool {
	var gf *GeneratorFault
	return errors.As(err, &gf)
}

// ConfigError reports an invalid dependency table or binding list.
type ConfigError struct {
	Output  OutputID
	Message string
}

func (e *ConfigError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("output %s: %s", e.Output, e.Message)
	}
	return e.Message
}
