// Package mapping creates the explicit mapping between job requirements and
// candidate profile evidence, and rolls per-requirement results into an
// overall match.
package mapping

import "fmt"

// InputError reports malformed mapper input. Absence of evidence is never an
// error; only nil or structurally invalid inputs are.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("mapping input error: %s", e.Message)
}
