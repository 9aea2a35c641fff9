package main

import (
	"os"

	"github.com/dshills/prscore/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
