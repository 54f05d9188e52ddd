package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "envfind: %v\n", err)
		os.Exit(exitCode(err))
	}
}
