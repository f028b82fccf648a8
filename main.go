package main

import (
	"fmt"
	"os"

	"page_automation/presentation/terminal"
)

func main() {
	termInterface := terminal.NewTerminalInterface(os.Stdout)

	if err := termInterface.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
