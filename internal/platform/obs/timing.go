package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of an operation when the returned func is deferred.
// A non-nil *errp is logged at warn level.
func Time(ctx context.Context, lg *slog.Logger, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	if lg == nil {
		lg = slog.Default()
	}

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			lg.Warn("op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		lg.Info("op done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
