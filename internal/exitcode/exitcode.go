// Package exitcode maps errors to process exit codes for consistent CLI behavior.
package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/hireplan-ai/hireplan/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, empty input)
	UsageError = 2

	// GatewayError indicates the language-model gateway was unreachable or failed
	GatewayError = 3

	// ContractError indicates the gateway returned a malformed response
	ContractError = 4

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors map by category; anything else is a general error.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var hpErr *errors.HirePlanError
	if !stderrors.As(err, &hpErr) {
		return GeneralError
	}

	switch hpErr.Category() {
	case "INPUT", "CONFIG", "IO":
		return UsageError
	case "GATEWAY":
		return GatewayError
	case "CONTRACT":
		return ContractError
	case "PIPELINE":
		// A step failure carries the underlying gateway/contract error.
		if hpErr.Cause != nil {
			if code := DetermineExitCode(hpErr.Cause); code != GeneralError {
				return code
			}
		}
		return GeneralError
	default:
		return GeneralError
	}
}
