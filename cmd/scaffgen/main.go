package main

import (
	"os"

	"github.com/scaffgen/core/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
