// main is the entry point for the veer CLI.
package main

import (
	"os"

	"github.com/veerlabs/veer/cmd"
	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
