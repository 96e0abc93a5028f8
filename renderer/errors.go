package renderer

import "errors"

// Process exit statuses.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCompileError = 101
	ExitLinkError    = 102
	ExitRenderError  = 103 // reserved, never returned
)

var (
	ErrFragmentCompile     = errors.New("error compiling fragment shader")
	ErrVertexCompile       = errors.New("error compiling vertex shader")
	ErrLink                = errors.New("error in linking program")
	ErrNoPositionAttribute = errors.New("error getting vert2d attribute location")
)

// ExitError carries the process status a pipeline failure maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func failure(err error) error {
	return &ExitError{Code: ExitFailure, Err: err}
}

// ExitCode returns the process status for err. Errors that are not an *ExitError
// map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}
