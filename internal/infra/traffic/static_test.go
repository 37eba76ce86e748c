package traffic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

func TestStaticProvider_SegmentLookup(t *testing.T) {
	provider := NewStaticProvider(nil)

	from := entity.GeoPoint{Lat: 25.040, Lon: 121.530}
	to := entity.GeoPoint{Lat: 25.060, Lon: 121.550}
	provider.SetSegment(from, to, 12*time.Minute)

	duration, err := provider.SegmentDuration(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 12*time.Minute, duration)
}

func TestStaticProvider_SegmentsAreDirected(t *testing.T) {
	provider := NewStaticProvider(nil)

	from := entity.GeoPoint{Lat: 25.040, Lon: 121.530}
	to := entity.GeoPoint{Lat: 25.060, Lon: 121.550}
	provider.SetSegment(from, to, 12*time.Minute)

	_, err := provider.SegmentDuration(context.Background(), to, from)

	assert.ErrorIs(t, err, service.ErrNoTrafficData)
}

func TestStaticProvider_UnknownSegment(t *testing.T) {
	provider := NewStaticProvider(nil)

	_, err := provider.SegmentDuration(context.Background(),
		entity.GeoPoint{Lat: 25.040, Lon: 121.530},
		entity.GeoPoint{Lat: 25.060, Lon: 121.550})

	assert.ErrorIs(t, err, service.ErrNoTrafficData)
}

func TestTimeoutProvider_PropagatesInnerResult(t *testing.T) {
	inner := NewStaticProvider(nil)
	from := entity.GeoPoint{Lat: 25.040, Lon: 121.530}
	to := entity.GeoPoint{Lat: 25.060, Lon: 121.550}
	inner.SetSegment(from, to, 9*time.Minute)

	provider := WithTimeout(inner, 100*time.Millisecond, nil)

	duration, err := provider.SegmentDuration(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Minute, duration)
}
