// Package main is the entry point for the distill CLI.
package main

import "distill.dev/pkg/distill/cmd"

func main() {
	cmd.Execute()
}
