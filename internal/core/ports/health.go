package ports

import "context"

// HealthChecker is a backend probed by GET /health. A failing probe marks
// the engine degraded; requests keep being served.
type HealthChecker interface {
	Ping(ctx context.Context) error
	// Name keys the probe in the report: postgresql, redis or memory.
	Name() string
}
