package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haemic/bloodflow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocoder_Reverse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Place
	}{
		{
			name: "city and state present",
			body: `{"address": {"city": "New Delhi", "state": "Delhi"}}`,
			want: Place{City: "New Delhi", State: "Delhi"},
		},
		{
			name: "falls back to town and region",
			body: `{"address": {"town": "Ambala", "region": "Haryana"}}`,
			want: Place{City: "Ambala", State: "Haryana"},
		},
		{
			name: "falls back through village and county",
			body: `{"address": {"county": "Alwar"}}`,
			want: Place{City: "Alwar"},
		},
		{
			name: "empty address",
			body: `{"address": {}}`,
			want: Place{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
				assert.NotEmpty(t, r.Header.Get("User-Agent"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewGeocoder(srv.URL)
			got, err := g.Reverse(context.Background(), 28.6139, 77.209)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGeocoder_ReverseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL)
	_, err := g.Reverse(context.Background(), 0, 0)
	assert.Error(t, err)
}

type countingLocator struct {
	calls int
	err   error
}

func (l *countingLocator) Locate(_ context.Context) (Position, error) {
	l.calls++
	if l.err != nil {
		return Position{}, l.err
	}
	return Position{Latitude: 28.6, Longitude: 77.2}, nil
}

func TestCachedLocator_ReusesFreshFix(t *testing.T) {
	inner := &countingLocator{}
	l := NewCachedLocator(inner)

	now := time.Now()
	l.now = func() time.Time { return now }

	_, err := l.Locate(context.Background())
	require.NoError(t, err)
	_, err = l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second lookup within the TTL should hit the cache")

	// Expire the fix.
	now = now.Add(positionTTL + time.Second)
	_, err = l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedLocator_DoesNotCacheFailures(t *testing.T) {
	inner := &countingLocator{err: errors.New("denied")}
	l := NewCachedLocator(inner)

	_, err := l.Locate(context.Background())
	require.Error(t, err)

	inner.err = nil
	_, err = l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestStaticLocator(t *testing.T) {
	var unset StaticLocator
	_, err := unset.Locate(context.Background())
	assert.ErrorIs(t, err, common.ErrNoLocation)

	set := StaticLocator{Position: &Position{Latitude: 1, Longitude: 2}}
	pos, err := set.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Position{Latitude: 1, Longitude: 2}, pos)
}
