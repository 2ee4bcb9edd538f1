package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRetriesUpToThreeAttempts(t *testing.T) {
	attempts := atomic.Int32{}
	router := mux.NewRouter()
	router.HandleFunc("/api/Products", func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(Config{BaseUrl: server.URL + "/api"})
	_, err := client.Get(context.Background(), server.URL+"/api/Products")

	require.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestDoSucceedsAfterTransientFailure(t *testing.T) {
	attempts := atomic.Int32{}
	router := mux.NewRouter()
	router.HandleFunc("/api/Products", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(Config{BaseUrl: server.URL + "/api"})
	raw, err := client.Get(context.Background(), server.URL+"/api/Products")

	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDoDoesNotRetryAfterCancellation(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{BaseUrl: "http://127.0.0.1:0/api"})
	_, err := client.Get(c, "http://127.0.0.1:0/api/Products")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckHealth(t *testing.T) {
	t.Run("given healthy api should return true", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := NewClient(Config{BaseUrl: server.URL + "/api"})
		assert.True(t, client.CheckHealth(context.Background()))
	})
	t.Run("given error status should return false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(Config{BaseUrl: server.URL + "/api"})
		assert.False(t, client.CheckHealth(context.Background()))
	})
	t.Run("given unreachable host should return false", func(t *testing.T) {
		client := NewClient(Config{BaseUrl: "http://127.0.0.1:1/api"})
		assert.False(t, client.CheckHealth(context.Background()))
	})
}

func TestConfig(t *testing.T) {
	config := Config{BaseUrl: "http://shop.example.com/api"}
	assert.Equal(t, "http://shop.example.com/api/Products", config.Resolve("Products"))
	assert.Equal(t, "http://shop.example.com", config.BaseOrigin())

	noApi := Config{BaseUrl: "http://shop.example.com"}
	assert.Equal(t, "http://shop.example.com", noApi.BaseOrigin())
}
