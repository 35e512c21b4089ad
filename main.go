// Package main is the entry point for the shroud CLI.
package main

import "shroud.dev/pkg/shroud/cmd"

func main() {
	cmd.Execute()
}
