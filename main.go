package main

import (
	"os"

	"github.com/fixdesk/fixdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
