package main

import (
	"os"

	"fxconvert/cmd/commands"
)

// @title fxconvert API
// @version 1.0
// @description Live currency conversion over periodically refreshed exchange rates.
// @BasePath /api/v1
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
