// Package traffic provides TrafficProvider implementations. Real-time feeds
// plug in behind the same interface; the optimizer falls back to derived
// durations whenever a lookup fails.
package traffic

import (
	"context"
	"log/slog"
	"time"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

const defaultLookupTimeout = 200 * time.Millisecond

// timeoutProvider bounds every lookup of the wrapped provider so a slow feed
// can never stall route optimization.
type timeoutProvider struct {
	inner   service.TrafficProvider
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout wraps a provider with a per-lookup deadline.
func WithTimeout(inner service.TrafficProvider, timeout time.Duration, logger *slog.Logger) service.TrafficProvider {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	return &timeoutProvider{inner: inner, timeout: timeout, logger: logger}
}

func (p *timeoutProvider) SegmentDuration(ctx context.Context, from, to entity.GeoPoint) (time.Duration, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	duration, err := p.inner.SegmentDuration(lookupCtx, from, to)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("traffic lookup failed",
				slog.String("error", err.Error()),
			)
		}

		return 0, err
	}

	return duration, nil
}

// NewProvider builds the configured traffic provider, or nil when traffic
// data is disabled. A nil provider means the optimizer derives durations from
// distance and vehicle speed alone.
func NewProvider(cfg *config.Config, logger *slog.Logger) service.TrafficProvider {
	if cfg.Traffic == nil || !cfg.Traffic.Enabled {
		logger.Info("traffic data disabled, durations derived from vehicle speed")

		return nil
	}

	return WithTimeout(NewStaticProvider(nil), cfg.Traffic.LookupTimeout, logger)
}
