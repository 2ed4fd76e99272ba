package enrichment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *httpClient {
	return &httpClient{
		baseURL: serverURL,
		apiKey:  "test-key",
		client:  &http.Client{Timeout: time.Second},
	}
}

func TestLookupDecodesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "pat buyer", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"pat@example.com","phone":"+1555","company":"Acme Realty","title":"Buyer","linkedin":"in/pat"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Lookup(context.Background(), "pat buyer")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", result.Email)
	assert.Equal(t, "Acme Realty", result.Company)
}

func TestLookupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Lookup(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestLookupProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Lookup(context.Background(), "anyone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
