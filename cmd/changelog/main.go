package main

import (
	"os"

	"github.com/joshiayush/changelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
