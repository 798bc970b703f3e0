package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrUpstream marks a network error or non-success status from the
	// upstream listings service.
	ErrUpstream = errors.New("upstream listings request failed")
	// ErrInvalidPayload marks a structurally invalid listings payload
	// (the top level is not a JSON object).
	ErrInvalidPayload = errors.New("listings payload is not an object")
)

// Client fetches raw listing records from the upstream listings service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a listings client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Fetch retrieves listings for the given search parameters. The result
// preserves upstream document order so normalized IDs are deterministic.
// An empty or missing "listings" object is an empty result, not an error.
func (c *Client) Fetch(ctx context.Context, state string, budget int, primaryUse string) ([]RawEntry, error) {
	query := url.Values{}
	query.Set("state", state)
	query.Set("budget", strconv.Itoa(budget))
	query.Set("primary_use", primaryUse)

	reqURL := c.baseURL + "/listings/?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var envelope struct {
		Listings json.RawMessage `json:"listings"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(envelope.Listings) == 0 || string(envelope.Listings) == "null" {
		c.logger.Warn("upstream returned no listings")
		return []RawEntry{}, nil
	}

	entries, err := decodeOrdered(envelope.Listings)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(entries)).Info("fetched upstream listings")
	return entries, nil
}

// decodeOrdered walks the listings object token by token so that entries
// come back in document order. Go maps would lose the order the dense
// sequential vehicle IDs depend on.
func decodeOrdered(raw json.RawMessage) ([]RawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrInvalidPayload
	}

	entries := []RawEntry{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, ErrInvalidPayload
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}

		// A record that is not an object degrades to a nil map; the
		// normalizer still emits a defaulted Vehicle for it.
		var record map[string]any
		if err := json.Unmarshal(value, &record); err != nil {
			record = nil
		}
		entries = append(entries, RawEntry{Key: key, Record: record})
	}

	return entries, nil
}
