// Package main provides the marquee CLI: the dashboard web server, a terminal
// dashboard and one-shot summaries of the Netflix catalogue.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
