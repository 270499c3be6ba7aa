package cli

import (
	"fmt"

	"github.com/arthur-debert/nulink/pkg/commands"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	ExitOK = 0
	// ExitFatal covers usage errors, load failures and unknown packages
	ExitFatal = 1
	// ExitPartialFailure means at least one package failed
	ExitPartialFailure = 2
)

// ExitCode maps the error returned by a command to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsErrorCode(err, errors.ErrPartialFailure):
		return ExitPartialFailure
	default:
		return ExitFatal
	}
}

// Execute runs rootCmd, prints any error the commands did not report
// themselves and returns the exit code
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err != nil && !commands.Reported(err) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), style.ErrorStyle.Render("Error: "+errors.Message(err)))
	}
	return ExitCode(err)
}
