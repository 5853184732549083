// Command layerctl renders a bundle of YAML documents through the
// layering engine from the command line.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/layerforge/layering/cmd/layerctl/internal/cli"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "layerctl: failed to start logger:", err)
		os.Exit(1)
	}

	defer logger.Sync() //nolint:errcheck

	if err := cli.Execute(logger); err != nil {
		logger.Error("layerctl failed", zap.Error(err))
		os.Exit(1)
	}
}
