// Command xferlock validates domain transfer auth codes from the terminal
package main

import (
	"os"

	"xferlock/cmd/xferlock/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
