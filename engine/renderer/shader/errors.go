package shader

import "fmt"

// CompileError reports WGSL source that cannot back the quad pipeline: unreadable, rejected
// by the WGSL front end or the GPU, or missing an entry point or binding the pipeline needs.
type CompileError struct {
	// Key is the shader key the error belongs to.
	Key string
	// Reason is a short description of the failed stage, such as "parse" or "vertex input".
	Reason string
	Err    error
}

func (e *CompileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("shader %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("shader %q: %s: %v", e.Key, e.Reason, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
