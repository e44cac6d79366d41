// Command twentyfour solves 24-game puzzles with a language-model oracle.
package main

import (
	"os"

	"github.com/roach88/twentyfour/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
