package generation

import "fmt"

// GenerationError indicates a section of the tailored output could not be produced
type GenerationError struct {
	Section string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to generate %s: %s: %v", e.Section, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to generate %s: %s", e.Section, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
