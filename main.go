package main

import (
	"os"

	"github.com/ThatCatDev/smutbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
