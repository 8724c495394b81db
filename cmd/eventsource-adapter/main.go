// Package main provides the CLI entrypoint for eventsource-adapter.
//
// eventsource-adapter loads YAML mapping files and:
//   - checks them against the type catalog and the sink overloads
//   - describes the adapter they synthesize
//   - publishes a notification through it and prints the written events
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(&app{out: os.Stdout}, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
