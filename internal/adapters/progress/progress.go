// Package progress defines how discovery runs publish checkpoint updates.
//
// Reporting is best-effort: a reporter must never fail or block a run, so the
// interface returns nothing and implementations are expected to swallow their
// own errors.
package progress

import (
	"context"

	"github.com/okian/scout/pkg/logger"
)

// Reporter receives checkpoint updates for a discovery session. sessionID is
// empty for synchronous runs. percent is in [0, 100]; data carries optional
// structured payload such as processed counts.
type Reporter interface {
	Report(ctx context.Context, sessionID, message string, percent float64, data map[string]any)
}

// Func adapts a plain function to the Reporter interface.
type Func func(ctx context.Context, sessionID, message string, percent float64, data map[string]any)

// Report implements Reporter.
func (f Func) Report(ctx context.Context, sessionID, message string, percent float64, data map[string]any) {
	f(ctx, sessionID, message, percent, data)
}

// Noop discards all updates.
type Noop struct{}

// Report implements Reporter.
func (Noop) Report(context.Context, string, string, float64, map[string]any) {}

// LogReporter writes checkpoints to the structured log.
type LogReporter struct {
	logger logger.Logger
}

// NewLogReporter creates a LogReporter. A nil logger falls back to the
// global one.
func NewLogReporter(lg logger.Logger) *LogReporter {
	if lg == nil {
		lg = logger.Get().Named("progress")
	}
	return &LogReporter{logger: lg}
}

// Report implements Reporter.
func (r *LogReporter) Report(ctx context.Context, sessionID, message string, percent float64, data map[string]any) {
	fields := []logger.Field{
		logger.String("session_id", sessionID),
		logger.Float64("percent", percent),
	}
	if len(data) > 0 {
		fields = append(fields, logger.Any("data", data))
	}
	r.logger.Info(ctx, message, fields...)
}

// Multi fans updates out to several reporters. A panicking reporter is
// isolated so the remaining ones still receive the update.
type Multi []Reporter

// Report implements Reporter.
func (m Multi) Report(ctx context.Context, sessionID, message string, percent float64, data map[string]any) {
	for _, r := range m {
		if r == nil {
			continue
		}
		safeReport(ctx, r, sessionID, message, percent, data)
	}
}

func safeReport(ctx context.Context, r Reporter, sessionID, message string, percent float64, data map[string]any) {
	defer func() {
		_ = recover()
	}()
	r.Report(ctx, sessionID, message, percent, data)
}
