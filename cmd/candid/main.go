// Command candid parses, prints, encodes and decodes Candid values.
package main

import (
	"os"

	"github.com/wippyai/candid/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
