package cli

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// writeMetrics writes reg's gathered metric families to path in the
// Prometheus text exposition format.
func writeMetrics(reg *prometheus.Registry, path string) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("layerctl: gather metrics: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("layerctl: open metrics output %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	enc := expfmt.NewEncoder(f, expfmt.FmtText)

	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("layerctl: encode metrics: %w", err)
		}
	}

	return nil
}
