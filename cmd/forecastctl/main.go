// Command forecastctl computes forecast reports from PostgreSQL or a JSON ledger file
// and prints them as JSON.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
