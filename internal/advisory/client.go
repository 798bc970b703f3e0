// Package advisory talks to the remote advisory service (vehicle analysis,
// insurance breakdown, chat) and coordinates the per-selection lifecycle of
// those requests.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// ErrTransport marks a network error or non-success status from the
// advisory service. Failures are scoped to one advisory kind; the rest of
// the detail view stays usable.
var ErrTransport = errors.New("advisory request failed")

// Service is the outbound contract the coordinator depends on.
type Service interface {
	Analyze(ctx context.Context, vehicle models.Vehicle) (*models.AIAnalysis, error)
	InsuranceBreakdown(ctx context.Context, vehicle models.Vehicle) (*models.InsuranceBreakdown, error)
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Checklist(ctx context.Context, vehicle models.Vehicle, out io.Writer) error
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an advisory client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Analyze requests the structured AI report for a vehicle.
func (c *Client) Analyze(ctx context.Context, vehicle models.Vehicle) (*models.AIAnalysis, error) {
	var envelope struct {
		AIAnalysis models.AIAnalysis `json:"aiAnalysis"`
	}
	if err := c.postJSON(ctx, "/ai/", vehicle, &envelope); err != nil {
		return nil, err
	}
	return &envelope.AIAnalysis, nil
}

// InsuranceBreakdown requests the raw multiplier breakdown for a vehicle.
func (c *Client) InsuranceBreakdown(ctx context.Context, vehicle models.Vehicle) (*models.InsuranceBreakdown, error) {
	var envelope struct {
		InsuranceBreakdown models.InsuranceBreakdown `json:"insuranceBreakdown"`
	}
	if err := c.postJSON(ctx, "/ai/insurance-breakdown", vehicle, &envelope); err != nil {
		return nil, err
	}
	return &envelope.InsuranceBreakdown, nil
}

// Chat sends one chat turn with the full prior history.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.postJSON(ctx, "/listings/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Checklist streams the binary buyer checklist into out. The document is
// opaque to this service; it is proxied as-is.
func (c *Client) Checklist(ctx context.Context, vehicle models.Vehicle, out io.Writer) error {
	resp, err := c.post(ctx, "/ai/checklist", vehicle)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, result any) error {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}
	return resp, nil
}
