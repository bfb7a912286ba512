package extraction

import "fmt"

// APICallError indicates the LLM call itself failed
type APICallError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction call failed: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction call failed: %s", e.Stage, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the LLM response could not be decoded
type ParseError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s extraction output: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s extraction output: %s", e.Stage, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates the decoded output failed schema or struct validation
type ValidationError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction output invalid: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction output invalid: %s", e.Stage, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
