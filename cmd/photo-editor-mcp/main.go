package main

import (
	"os"

	"github.com/ironsheep/photo-editor-mcp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
