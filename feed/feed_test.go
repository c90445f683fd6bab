package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-ai/finsight/capability"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key")
}

func TestStockQuoteFetch(t *testing.T) {
	var gotPath, gotSymbol, gotKey string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		gotKey = r.URL.Query().Get("apikey")
		json.NewEncoder(w).Encode(map[string]any{"price": 258.02, "changesPercentage": 1.4})
	})

	quote := NewStockQuote(client)
	result, err := quote.Invoke(context.Background(), map[string]any{"ticker": "AAPL"})

	require.NoError(t, err)
	assert.Equal(t, "/quote", gotPath)
	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, "test-key", gotKey)
	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 258.02, m["price"])
}

func TestIncomeStatementDefaults(t *testing.T) {
	var gotLimit, gotPeriod string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotPeriod = r.URL.Query().Get("period")
		json.NewEncoder(w).Encode([]map[string]any{{"revenue": 1000.0}})
	})

	stmt := NewIncomeStatement(client)
	_, err := stmt.Invoke(context.Background(), map[string]any{"ticker": "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "4", gotLimit)
	assert.Empty(t, gotPeriod)

	// Explicit period and a JSON-shaped limit override the defaults.
	_, err = stmt.Invoke(context.Background(), map[string]any{
		"ticker": "AAPL", "period": "quarterly", "limit": float64(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "8", gotLimit)
	assert.Equal(t, "quarterly", gotPeriod)
}

func TestRateLimitClassifiedTransient(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	quote := NewStockQuote(client)
	_, err := quote.Invoke(context.Background(), map[string]any{"ticker": "AAPL"})

	require.Error(t, err)
	assert.True(t, capability.IsTransient(err))
	var ie *capability.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, capability.KindThrottled, ie.Kind)
}

func TestServiceUnavailableClassifiedTransient(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "renegotiating session", http.StatusServiceUnavailable)
	})

	news := NewNewsSearch(client)
	_, err := news.Invoke(context.Background(), map[string]any{"query": "apple"})

	require.Error(t, err)
	assert.True(t, capability.IsTransient(err))
}

func TestServerErrorClassifiedPermanent(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad symbol", http.StatusBadRequest)
	})

	quote := NewStockQuote(client)
	_, err := quote.Invoke(context.Background(), map[string]any{"ticker": "???"})

	require.Error(t, err)
	assert.False(t, capability.IsTransient(err))
	var ie *capability.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, capability.KindExecution, ie.Kind)
}

func TestMissingArgumentRejectedBeforeFetch(t *testing.T) {
	fetched := false
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fetched = true
	})

	quote := NewStockQuote(client)
	_, err := quote.Invoke(context.Background(), map[string]any{})

	require.Error(t, err)
	assert.False(t, fetched)
	var ie *capability.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, capability.KindInvalidArgs, ie.Kind)
}
