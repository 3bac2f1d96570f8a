package main

import (
	"os"

	"github.com/zero360/researchlab/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
