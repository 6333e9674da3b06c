// Command inkreplay replays pen input scenarios against a headless engine.
//
// Usage:
//
//	inkreplay replay testdata/line.yaml --png line.png
//	inkreplay replay testdata/line.yaml --format json
//	inkreplay config > ink.toml
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}
