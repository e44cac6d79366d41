package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// writeMetricsFile dumps every registered metric in the Prometheus text
// format, suitable for the node_exporter textfile collector. The file is
// replaced atomically.
func writeMetricsFile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
