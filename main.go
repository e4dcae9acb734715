package main

import (
	"os"

	"github.com/xdanny/strands-eval/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
