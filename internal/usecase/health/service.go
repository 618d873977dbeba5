package health

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the service is fully operational.
	Healthy Status = "ok"
	// Degraded indicates the service is up but has nothing to serve.
	Degraded Status = "degraded"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Documents int
	Skipped   int
}

// Service reports service health. The store is immutable after startup,
// so the only interesting signal is whether the load phase produced any
// documents at all.
type Service struct {
	store StoreReader
}

// New creates a Service.
func New(store StoreReader) *Service {
	return &Service{store: store}
}

// Check builds the health report. An empty store is degraded: the load
// phase completed but every file was missing or skipped.
func (s *Service) Check() Report {
	report := Report{
		Documents: s.store.Len(),
		Skipped:   s.store.Skipped(),
		Status:    Healthy,
	}
	if report.Documents == 0 {
		report.Status = Degraded
	}
	return report
}
