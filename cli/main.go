package main

import (
	"os"

	"github.com/booscaaa/go-query-pagination/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
