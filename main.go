package main

import (
	"os"

	"github.com/arjun222-afk/careerprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
