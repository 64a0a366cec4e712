package config

import (
	"fmt"
	"io"
	"os"
)

// Swapped in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf reports a fatal startup error for a command and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
