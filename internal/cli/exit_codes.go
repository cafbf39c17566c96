package cli

import "errors"

const (
	ExitCodeUnknownError     = 1
	ExitCodeInvalidArguments = 2
	ExitCodeInvalidInput     = 3
	ExitCodeInvalidOutput    = 4
	ExitCodeRenderError      = 5
	ExitCodeServerError      = 6
)

// ExitCodeError carries the process exit code for a failed command.
type ExitCodeError struct {
	originalError error
	exitCode      int
}

func (e *ExitCodeError) Error() string {
	return e.originalError.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.originalError
}

func (e *ExitCodeError) ExitCode() int {
	return e.exitCode
}

func newExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{
		originalError: err,
		exitCode:      code,
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
// Errors that carry no code exit with ExitCodeUnknownError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	exitCodeError := &ExitCodeError{}
	if errors.As(err, &exitCodeError) {
		return exitCodeError.ExitCode()
	}
	return ExitCodeUnknownError
}
