package llm

import "fmt"

// GenerationError reports a failure to produce a commit message, either
// because there was nothing to summarize or because the model call failed.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
