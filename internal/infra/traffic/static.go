package traffic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

// StaticProvider serves segment durations from a fixed table. It backs tests
// and local development where no live feed exists.
type StaticProvider struct {
	mu       sync.RWMutex
	segments map[string]time.Duration
}

// NewStaticProvider creates a provider over a fixed segment table.
func NewStaticProvider(segments map[string]time.Duration) *StaticProvider {
	if segments == nil {
		segments = make(map[string]time.Duration)
	}

	return &StaticProvider{segments: segments}
}

// SetSegment registers the duration for one directed segment.
func (p *StaticProvider) SetSegment(from, to entity.GeoPoint, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.segments[segmentKey(from, to)] = duration
}

// SegmentDuration returns the registered duration for the segment, or
// ErrNoTrafficData when the table has no entry.
func (p *StaticProvider) SegmentDuration(_ context.Context, from, to entity.GeoPoint) (time.Duration, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	duration, ok := p.segments[segmentKey(from, to)]
	if !ok {
		return 0, service.ErrNoTrafficData
	}

	return duration, nil
}

func segmentKey(from, to entity.GeoPoint) string {
	return fmt.Sprintf("%.6f,%.6f>%.6f,%.6f", from.Lat, from.Lon, to.Lat, to.Lon)
}
