package main

import (
	"os"

	"github.com/arthur-debert/nulink/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd()))
}
