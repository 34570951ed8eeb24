package main

import (
	"os"

	"github.com/sherine-k/qnetsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
