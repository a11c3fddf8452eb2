package main

import (
	"os"

	"github.com/wardenci/warden/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
