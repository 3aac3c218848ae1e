// Package main provides the registro CLI, the admin surface over the
// dynamic-schema record store: model definitions, records, queries,
// spreadsheet import/export, analytics and maintenance operations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
