// Package main is newsctl, the operator CLI for news-mann: schema migrations and one-off digests.
package main

import (
	"os"

	"github.com/DjordjeVuckovic/news-mann/pkg/output"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.NewPrinter().Error("%v", err)
		os.Exit(1)
	}
}
