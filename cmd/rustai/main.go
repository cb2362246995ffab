package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	rerrors "rustai/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Coded errors are
// written to stderr in the selected output format.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	closeLogging(stderr)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	coded := rerrors.FromError(err)
	out, ferr := FormatResponse(coded, OutputFormat(formatFlag))
	if ferr != nil {
		out = coded.Error()
	}
	fmt.Fprintln(stderr, out)
	return 1
}

// exitError ends the process with code and prints nothing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
