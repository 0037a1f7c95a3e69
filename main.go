package main

import (
	"os"

	"github.com/dawsh2/Torq/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
