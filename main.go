// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"

	"github.com/gdpotter/pgmt/cmd"
)

func main() {
	err := cmd.Execute()
	switch {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, cmd.ErrDestructiveBlocked):
		os.Exit(2)
	case errors.Is(err, cmd.ErrDifferencesFound):
		os.Exit(1)
	default:
		os.Exit(1)
	}
}
