package main

import (
	"os"

	"github.com/agentcanvas-dev/agentcanvas/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
