package main

import (
	"github.com/deso-protocol/reccak/cmd"
)

func main() {
	// Commands are defined in the cmd package, e.g.
	// $ echo -n AbCxYz | ./reccak hash
	// $ ./reccak reverse --digest 0x... --length 3
	// Flags can also come from a config file or environment variables (WORKERS=8).
	cmd.Execute()
}
