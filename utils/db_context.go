package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds ordinary plan/check-in queries.
const DefaultQueryTimeout = 30 * time.Second

// MetricsQueryTimeout bounds the wider reads behind PPC recomputation and the
// weekly provisioning cron.
const MetricsQueryTimeout = 60 * time.Second

// QueryContext returns a context with the given timeout for database work.
func QueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}
