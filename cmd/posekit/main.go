package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A cancelled merge already logged what it was doing.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "posekit:", err)
		}
		os.Exit(1)
	}
}
