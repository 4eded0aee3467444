package main

import (
	"os"

	"github.com/nathanhack/fecsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
