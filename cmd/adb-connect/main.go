package main

import (
	"fmt"
	"os"

	"adb-connect/internal/cli"
	"adb-connect/internal/gui"
)

func main() {
	if err := cli.Execute(gui.Launcher("adb-connect")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
