package postcodes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/providers/postcodes"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
)

// memoryCache is a minimal in-process CacheProvider for tests
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

var errCacheMiss = errors.New("cache miss")

func TestClient_Lookup(t *testing.T) {
	t.Run("resolves a known postcode", func(t *testing.T) {
		var requestedPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": 200,
				"result": {
					"postcode": "W2 4UW",
					"region": "London",
					"admin_district": "Westminster",
					"admin_ward": "Bayswater"
				}
			}`))
		}))
		defer server.Close()

		client := postcodes.NewClientWithOptions(server.URL, nil, server.Client())

		record, err := client.Lookup(context.Background(), "w24uw")

		require.NoError(t, err)
		assert.Equal(t, "/postcodes/W2 4UW", requestedPath)
		assert.Equal(t, "W2 4UW", record.Postcode)
		assert.Equal(t, "London", record.Region)
		assert.Equal(t, "Westminster", record.AdminDistrict)
	})

	t.Run("maps 404 to ErrPostcodeNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := postcodes.NewClientWithOptions(server.URL, nil, server.Client())

		_, err := client.Lookup(context.Background(), "ZZ1 1ZZ")
		assert.ErrorIs(t, err, providers.ErrPostcodeNotFound)
	})

	t.Run("surfaces server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := postcodes.NewClientWithOptions(server.URL, nil, server.Client())

		_, err := client.Lookup(context.Background(), "W2 4UW")
		require.Error(t, err)
		assert.NotErrorIs(t, err, providers.ErrPostcodeNotFound)
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":200,"result":{"postcode":"W2 4UW","region":"London"}}`))
		}))
		defer server.Close()

		client := postcodes.NewClientWithOptions(server.URL, newMemoryCache(), server.Client())

		_, err := client.Lookup(context.Background(), "W2 4UW")
		require.NoError(t, err)
		record, err := client.Lookup(context.Background(), "W2 4UW")
		require.NoError(t, err)

		assert.Equal(t, 1, hits)
		assert.Equal(t, "London", record.Region)
	})
}
