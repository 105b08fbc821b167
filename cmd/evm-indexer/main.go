// Command evm-indexer is the process entrypoint: a zero-argument binary
// that indexes one named indexer's configured token set until a step fails.
package main

import (
	"os"

	"github.com/stryukovsky/go-evm-indexer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
