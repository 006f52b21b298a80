// Package cli provides common CLI utilities for the tonegen command-line tool.
//
// This package includes:
//   - Configuration management (contexts with tone defaults and storage targets)
//   - Output formatting (YAML, JSON, table, raw) with jq-style queries
//   - Request file loading (YAML/JSON, with lenient JSON repair)
//   - Human readable byte and duration formatting
//
// Configuration is stored in ~/.tonegen/config.yaml, supporting
// multiple contexts similar to kubectl.
//
// Example usage:
//
//	cfg, err := cli.LoadConfigWithPath("")
//
//	// Resolve the -c context or the current one (nil if none)
//	ctx, err := cfg.ResolveContext(name)
//
//	// Output result
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatTable,
//	    Query:  ".location",
//	})
package cli
