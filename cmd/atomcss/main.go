// Package main provides the atomcss CLI for compiling style-definition files
// into atomic CSS.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errBuildFailed is returned when at least one file failed to compile. The
// issues have already been printed.
var errBuildFailed = errors.New("build failed")

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	switch {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, errBuildFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
