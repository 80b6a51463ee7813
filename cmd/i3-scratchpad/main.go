package main

import (
	"os"

	"i3-scratchpad/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
