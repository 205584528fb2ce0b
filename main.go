package main

import (
	"os"

	"github.com/ByLCY/newscard/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
