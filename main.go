package main

import (
	"os"

	"github.com/spigell/hirekit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
