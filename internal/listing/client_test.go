package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientFetchPreservesOrder(t *testing.T) {
	// Keys deliberately out of lexical order; entry order must follow the
	// document, not the keys.
	payload := `{"listings": {
		"ZVIN": {"vehicle": {"make": "Zenith"}},
		"AVIN": {"vehicle": {"make": "Acme"}},
		"MVIN": {"vehicle": {"make": "Midway"}}
	}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/", r.URL.Path)
		assert.Equal(t, "NJ", r.URL.Query().Get("state"))
		assert.Equal(t, "50000", r.URL.Query().Get("budget"))
		assert.Equal(t, "Sedan", r.URL.Query().Get("primary_use"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, testLogger())
	entries, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "ZVIN", entries[0].Key)
	assert.Equal(t, "AVIN", entries[1].Key)
	assert.Equal(t, "MVIN", entries[2].Key)
}

func TestClientFetchEmptyListings(t *testing.T) {
	for _, body := range []string{`{}`, `{"listings": {}}`, `{"listings": null}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(server.URL, 5*time.Second, testLogger())
		entries, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

		assert.NoError(t, err, "body %s", body)
		assert.Empty(t, entries, "body %s", body)
		server.Close()
	}
}

func TestClientFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, testLogger())
	_, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientFetchMalformedRecordDegrades(t *testing.T) {
	// A non-object record keeps its slot with a nil map rather than
	// failing the whole batch.
	payload := `{"listings": {"GOOD": {"vehicle": {"make": "Honda"}}, "BAD": [1, 2]}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, testLogger())
	entries, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.NotNil(t, entries[0].Record)
	assert.Nil(t, entries[1].Record)
}

func TestClientFetchInvalidTopLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"listings": "not-an-object"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, testLogger())
	_, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestClientFetchNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, testLogger())
	_, err := client.Fetch(context.Background(), "NJ", 50000, "Sedan")

	assert.ErrorIs(t, err, ErrUpstream)
}
