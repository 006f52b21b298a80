// Package main is the entry point for the tonegen CLI.
//
// Usage:
//
//	tonegen [flags] <command> [subcommand] [args]
//
// Commands:
//
//	generate   - Render a sine test tone to a WAVE file
//	inspect    - Show the header of a WAVE file
//	history    - List, show and delete generation records
//	config     - Configuration management (contexts)
//	schema     - Print the JSON Schema of generate request files
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/tonegen/cmd/tonegen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
