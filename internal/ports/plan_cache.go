package ports

import "context"

// Caches encoded mission reports by request fingerprint.
type PlanCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Put(ctx context.Context, key string, body []byte) error
}
