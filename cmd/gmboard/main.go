// Command gmboard manages tactical-game boards from the command line.
package main

import (
	"os"

	"github.com/dfb/gmtools/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
