package main

import (
	"os"

	"github.com/fuzumoe/url-insight-dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
