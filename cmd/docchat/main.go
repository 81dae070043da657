// Command docchat runs the document question-answering server and its
// companion CLI.
package main

import (
	"os"

	"github.com/panuwat-dev/docchat/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
