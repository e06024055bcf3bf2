package command

import (
	"errors"

	"github.com/tartampluch/go-datediff/internal/config"
)

// exitError attaches a process exit code to err. It satisfies
// cli.ExitCoder.
type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func usageError(err error) error {
	return &exitError{err: err, code: config.ExitCodeUsage}
}

// ExitCode maps an error returned by the root command to a process exit
// code: success, usage error or failure.
func ExitCode(err error) int {
	if err == nil {
		return config.ExitCodeSuccess
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return config.ExitCodeError
}
