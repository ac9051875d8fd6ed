package main

import (
	"os"

	"daylog/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
