package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the fundvault HTTP API on behalf of one caller
// identity.
type Client struct {
	baseURL  string
	callerID string
	client   *http.Client
}

// NewClient returns a client bound to the given server and caller.
func NewClient(baseURL, callerID string) *Client {
	return &Client{
		baseURL:  baseURL,
		callerID: callerID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CampaignView mirrors the service's campaign representation.
type CampaignView struct {
	ID              uint64    `json:"id"`
	Owner           string    `json:"owner"`
	Title           string    `json:"title"`
	Target          int64     `json:"target"`
	Deadline        time.Time `json:"deadline"`
	AmountCollected int64     `json:"amount_collected"`
	PaidOut         bool      `json:"paid_out"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (c *Client) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Caller-Id", c.callerID)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%s)", apiErr.Error, apiErr.Kind)
		}
		return fmt.Errorf("HTTP %d from %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) SetTax(percent int64) error {
	return c.do(http.MethodPut, "/api/v1/platform/tax", map[string]int64{"percent": percent}, nil)
}

func (c *Client) ToggleEmergency() (bool, error) {
	var out struct {
		Emergency bool `json:"emergency"`
	}
	if err := c.do(http.MethodPost, "/api/v1/platform/emergency", nil, &out); err != nil {
		return false, err
	}
	return out.Emergency, nil
}

func (c *Client) EmergencyRefundRange(startID, endID uint64) error {
	body := map[string]uint64{"start_id": startID, "end_id": endID}
	return c.do(http.MethodPost, "/api/v1/platform/emergency/refunds", body, nil)
}

func (c *Client) HaltDeadline(id uint64) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/halt-deadline", id), nil, nil)
}

func (c *Client) ListCampaigns() ([]CampaignView, error) {
	var out []CampaignView
	if err := c.do(http.MethodGet, "/api/v1/campaigns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
