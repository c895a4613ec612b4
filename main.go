package main

import (
	"fmt"
	"os"

	"adb-connect/internal/cli"
	"adb-connect/internal/gui"
)

func main() {
	// The App ID must be set here for the fyne tool to work correctly.
	if err := cli.Execute(gui.Launcher("io.github.adb-connect")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
