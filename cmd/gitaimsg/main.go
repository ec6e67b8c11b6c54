// Package main is the entry point for the gitaimsg CLI. gitaimsg drafts
// commit messages from staged changes via a configurable LLM provider and
// injects them through the prepare-commit-msg hook without ever blocking
// the commit.
package main

import (
	"fmt"
	"os"

	"github.com/gitaimsg/gitaimsg/internal/cmd"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
