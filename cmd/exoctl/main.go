// Package main is the entry point for the exoctl CLI.
//
// exoctl checks dashboard configuration files offline and answers the same
// policy questions the API serves: which server actions a flavor allows and
// which images an instance type selects.
//
//	exoctl --help
package main

import (
	"fmt"
	"os"

	"github.com/tsanders-rh/exopolicy/cmd/exoctl/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
