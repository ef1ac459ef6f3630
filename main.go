package main

import (
	"os"

	"github.com/vocabflow/vocabflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
