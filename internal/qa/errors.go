// Package qa validates a tailored document against the original candidate
// profile, detecting fabricated content, flagging exaggerations, and
// computing the final match score.
package qa

import (
	"fmt"
	"strings"
)

// FabricationError is a hard failure: the tailored document contains content
// with no provenance in the original profile. It blocks result delivery.
type FabricationError struct {
	Violations []string
}

func (e *FabricationError) Error() string {
	return fmt.Sprintf("fabrication detected: %s", strings.Join(e.Violations, "; "))
}
