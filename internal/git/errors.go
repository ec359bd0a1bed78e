package git

import "fmt"

// OperationError reports a failed git invocation. It carries the command's
// stderr output so callers see git's own diagnostic.
type OperationError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %s", e.Op, e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
