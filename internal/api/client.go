// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds one fetch; it is distinct from the polling
	// interval so a hung request cannot block the next scheduled tick.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps how much body we are willing to read (4MB).
	MaxResponseSize = 4 * 1024 * 1024

	userAgent = "ortrack/1.0"
)

// Client talks to the asset-tracking backend.
// It is stateless beyond the underlying connection pool and safe for
// concurrent use by multiple pollers.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Config is minimal transport config.
type Config struct {
	BaseURL string
	Token   string // bearer token; empty means unauthenticated
	Timeout time.Duration
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api client: base url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// VerificationStatus fetches the reconciliation snapshot for one
// operation session. forceScan asks the backend for a live RFID read
// instead of cached state.
func (c *Client) VerificationStatus(ctx context.Context, sessionID int, forceScan bool) (*VerificationStatus, error) {
	url := fmt.Sprintf("%s/api/verification/%d/status/", c.baseURL, sessionID)
	if forceScan {
		url += "?scan=true"
	}

	var out VerificationStatus
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanRoom asks the backend to scan a room for large equipment.
func (c *Client) ScanRoom(ctx context.Context, roomID string, scanDuration int) (*RoomScanResult, error) {
	url := c.baseURL + "/api/equipment/scan-room/"

	body, err := json.Marshal(map[string]any{
		"room_id":       roomID,
		"scan_duration": scanDuration,
	})
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, URL: url, Err: err}
	}

	var out RoomScanResult
	if err := c.doJSON(ctx, http.MethodPost, url, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, out any) error {
	requestID := uuid.NewString()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, RequestID: requestID, Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, RequestID: requestID, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindHTTP
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		return &FetchError{Kind: kind, StatusCode: resp.StatusCode, URL: url, RequestID: requestID}
	}

	// A reverse proxy or the framework can answer 200 with an HTML
	// error page; catch that before handing bytes to the decoder.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		media, _, err := mime.ParseMediaType(ct)
		if err == nil && media != "application/json" {
			return &FetchError{
				Kind: KindMalformed, URL: url, RequestID: requestID,
				Err: fmt.Errorf("unexpected content type %q", media),
			}
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, RequestID: requestID, Err: err}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &FetchError{Kind: KindMalformed, URL: url, RequestID: requestID, Err: err}
	}

	return nil
}
