package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	documentsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "docshelf",
		Name:      "documents_loaded",
		Help:      "Number of documents in the in-memory store",
	})

	filesSkipped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "docshelf",
		Name:      "load_files_skipped",
		Help:      "Number of files dropped during the load phase (parse failures, duplicates)",
	})
)

// RegisterStoreMetrics registers the load-phase gauges. Called once from
// the composition root (no init()).
func RegisterStoreMetrics() {
	prometheus.MustRegister(documentsLoaded)
	prometheus.MustRegister(filesSkipped)
}

// SetStoreStats records the load-phase outcome. The store never changes
// after startup, so this is set exactly once.
func SetStoreStats(loaded, skipped int) {
	documentsLoaded.Set(float64(loaded))
	filesSkipped.Set(float64(skipped))
}
