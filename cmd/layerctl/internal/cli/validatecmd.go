package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/layerforge/layering/sources"
	"github.com/layerforge/layering/validate"
)

func newValidateCmd(logger *zap.Logger) *cobra.Command {
	var (
		inputPath  string
		schemaPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check each document's data against a JSON Schema, without rendering",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(logger, inputPath, schemaPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "bundle file to check, - for stdin")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON Schema file (required)")

	return cmd
}

func runValidate(logger *zap.Logger, inputPath, schemaPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("layerctl: --schema is required")
	}

	schemaFile, err := os.Open(schemaPath) //nolint:gosec
	if err != nil {
		return fmt.Errorf("layerctl: open schema %s: %w", schemaPath, err)
	}
	defer schemaFile.Close() //nolint:errcheck

	schema, err := validate.CompileFromReader(schemaFile)
	if err != nil {
		return fmt.Errorf("layerctl: %w", err)
	}

	f, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	docs, err := sources.LoadBundle(f)
	if err != nil {
		return fmt.Errorf("layerctl: %w", err)
	}

	var failed bool

	for _, doc := range docs {
		var name string

		if metadata, ok := doc["metadata"].(map[string]any); ok {
			name, _ = metadata["name"].(string) //nolint:errcheck
		}

		errs := schema.Validate(doc)
		for _, e := range errs {
			failed = true

			logger.Warn("schema violation", zap.String("document", name), zap.String("detail", e.String()))
		}
	}

	if failed {
		return fmt.Errorf("layerctl: one or more documents failed schema validation")
	}

	return nil
}
