// Package cli wires the layerctl subcommands onto a root cobra command.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute builds and runs the layerctl root command.
func Execute(logger *zap.Logger) error {
	root := &cobra.Command{
		Use:   "layerctl",
		Short: "layerctl renders document bundles through the layering engine",
	}

	root.AddCommand(newRenderCmd(logger))
	root.AddCommand(newValidateCmd(logger))

	return root.Execute()
}
