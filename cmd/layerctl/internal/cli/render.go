package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/layerforge/layering"
	"github.com/layerforge/layering/docstore"
	"github.com/layerforge/layering/metrics"
	"github.com/layerforge/layering/sources"
)

func newRenderCmd(logger *zap.Logger) *cobra.Command {
	var (
		inputPath      string
		metricsOn      bool
		metricsOut     string
		storeEndpoints []string
		storeBucket    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML document bundle through the layering engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRenderCmd(cmd.Context(), logger, renderOptions{
				inputPath:      inputPath,
				metricsOn:      metricsOn,
				metricsOut:     metricsOut,
				storeEndpoints: storeEndpoints,
				storeBucket:    storeBucket,
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "bundle file to render, - for stdin")
	cmd.Flags().BoolVar(&metricsOn, "metrics", false, "record render metrics (written out with --metrics-out)")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write metrics in text exposition format to this file")
	cmd.Flags().StringSliceVar(&storeEndpoints, "store", nil, "etcd endpoints to read the bundle from instead of --file")
	cmd.Flags().StringVar(&storeBucket, "bucket", "", "bucket name to fetch when --store is set")

	return cmd
}

type renderOptions struct {
	inputPath      string
	metricsOn      bool
	metricsOut     string
	storeEndpoints []string
	storeBucket    string
}

func runRenderCmd(ctx context.Context, logger *zap.Logger, opts renderOptions) error {
	docs, err := loadRenderInput(ctx, opts)
	if err != nil {
		return err
	}

	return renderAndEmit(logger, docs, opts.metricsOn, opts.metricsOut)
}

func loadRenderInput(ctx context.Context, opts renderOptions) ([]map[string]any, error) {
	if len(opts.storeEndpoints) > 0 {
		if opts.storeBucket == "" {
			return nil, fmt.Errorf("layerctl: --bucket is required when --store is set")
		}

		client, err := clientv3.New(clientv3.Config{Endpoints: opts.storeEndpoints})
		if err != nil {
			return nil, fmt.Errorf("layerctl: connect store: %w", err)
		}
		defer client.Close() //nolint:errcheck

		store := docstore.NewEtcdStore(client, "/layerforge/")

		docs, err := store.Get(ctx, opts.storeBucket)
		if err != nil {
			return nil, fmt.Errorf("layerctl: %w", err)
		}

		return docs, nil
	}

	f, err := openInput(opts.inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	docs, err := sources.LoadBundle(f)
	if err != nil {
		return nil, fmt.Errorf("layerctl: %w", err)
	}

	return docs, nil
}

// runRender renders a bundle loaded from a file or stdin; kept as the
// simple entry point exercised directly by tests that don't need store
// wiring.
func runRender(logger *zap.Logger, inputPath string, metricsOn bool, metricsOut string) error {
	return runRenderCmd(context.Background(), logger, renderOptions{
		inputPath:  inputPath,
		metricsOn:  metricsOn,
		metricsOut: metricsOut,
	})
}

func renderAndEmit(logger *zap.Logger, docs []map[string]any, metricsOn bool, metricsOut string) error {
	var rec *metrics.Recorder

	reg := prometheus.NewRegistry()
	if metricsOn {
		rec = metrics.NewRecorder(reg)
	}

	start := time.Now()
	rendered, err := layering.Render(docs)
	rec.ObserveRender(time.Since(start), err)

	if err != nil {
		logger.Error("render failed", zap.Error(err))
		return fmt.Errorf("layerctl: render: %w", err)
	}

	logger.Info("render succeeded", zap.Int("documents", len(rendered)))

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close() //nolint:errcheck

	for _, d := range rendered {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("layerctl: encode output: %w", err)
		}
	}

	if metricsOut != "" {
		return writeMetrics(reg, metricsOut)
	}

	return nil
}

func openInput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("layerctl: open %s: %w", path, err)
	}

	return f, nil
}
