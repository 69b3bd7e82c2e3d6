package main

import (
	"os"

	"github.com/spigell/docranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
