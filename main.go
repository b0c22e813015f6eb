// main is the entry point for the lineheat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lineheat/lineheat/cmd"
	"github.com/lineheat/lineheat/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
