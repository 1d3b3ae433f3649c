package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingGeocoder struct {
	calls int
	point Point
	err   error
}

func (g *countingGeocoder) Lookup(context.Context, string) (Point, error) {
	g.calls++
	return g.point, g.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCachedGeocoder_CachesHits(t *testing.T) {
	mr, rdb := newRedis(t)
	upstream := &countingGeocoder{point: Point{Lat: 40.7, Lon: -74.0}}
	c := NewCachedGeocoder(upstream, rdb, time.Hour, zap.NewNop())

	for i := 0; i < 3; i++ {
		p, err := c.Lookup(context.Background(), "10001")
		require.NoError(t, err)
		assert.Equal(t, upstream.point, p)
	}
	assert.Equal(t, 1, upstream.calls)
	assert.True(t, mr.Exists("geocode:10001"))
}

func TestCachedGeocoder_CachesNotFoundBriefly(t *testing.T) {
	mr, rdb := newRedis(t)
	upstream := &countingGeocoder{err: ErrNotFound}
	c := NewCachedGeocoder(upstream, rdb, 24*time.Hour, zap.NewNop())

	_, err := c.Lookup(context.Background(), "00000")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = c.Lookup(context.Background(), "00000")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, upstream.calls)

	mr.FastForward(2 * time.Hour)
	_, _ = c.Lookup(context.Background(), "00000")
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedGeocoder_DoesNotCacheFailures(t *testing.T) {
	_, rdb := newRedis(t)
	upstream := &countingGeocoder{err: errors.New("timeout")}
	c := NewCachedGeocoder(upstream, rdb, time.Hour, zap.NewNop())

	_, err := c.Lookup(context.Background(), "10001")
	require.Error(t, err)
	_, _ = c.Lookup(context.Background(), "10001")
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedGeocoder_RedisDownFallsThrough(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	upstream := &countingGeocoder{point: Point{Lat: 1, Lon: 2}}
	c := NewCachedGeocoder(upstream, rdb, time.Hour, zap.NewNop())

	p, err := c.Lookup(context.Background(), "10001")
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 1, Lon: 2}, p)
}

func TestGoogleClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "postal_code:10001|country:US", r.URL.Query().Get("components"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":40.75,"lng":-73.99}}}]}`))
	}))
	defer srv.Close()

	c := NewGoogleClient(GoogleOptions{BaseURL: srv.URL, APIKey: "test-key", Region: "us"}, zap.NewNop())
	p, err := c.Lookup(context.Background(), "10001")
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 40.75, Lon: -73.99}, p)
}

func TestGoogleClient_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	c := NewGoogleClient(GoogleOptions{BaseURL: srv.URL}, zap.NewNop())
	_, err := c.Lookup(context.Background(), "99999")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGoogleClient_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewGoogleClient(GoogleOptions{BaseURL: srv.URL}, zap.NewNop())
	_, err := c.Lookup(context.Background(), "10001")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
