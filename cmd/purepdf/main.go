// Command purepdf runs page operations on local PDF files.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JaimeStill/pure-pdf/internal/operations"
)

func main() {
	if err := New().Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, operations.ErrValidation) {
		return 2
	}
	return 1
}
