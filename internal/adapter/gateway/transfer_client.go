package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v5"

	"fundvault/internal/config/configs"
	"fundvault/internal/core/port"
)

// TransferClient implements port.TransferGateway against the payment
// backend's HTTP API. The backend applies transfers atomically and
// deduplicates on the reference, so retrying a request that may have
// gone through cannot pay twice.
//
// Transport failures and 5xx responses are retried with exponential
// backoff up to a bounded number of tries; 4xx responses are declines
// and fail immediately.
type TransferClient struct {
	baseURL  string
	token    string
	maxTries uint
	client   *http.Client
}

// NewTransferClient builds a client from the gateway configuration.
func NewTransferClient(cfg configs.Gateway) *TransferClient {
	return &TransferClient{
		baseURL:  cfg.Addr.String(),
		token:    cfg.Token,
		maxTries: cfg.MaxTries,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type transferRequest struct {
	Reference string `json:"reference"`
	Account   string `json:"account"`
	Amount    int64  `json:"amount"`
}

// Transfer submits the instruction, retrying retryable failures.
func (c *TransferClient) Transfer(ctx context.Context, t port.Transfer) error {
	operation := func() (struct{}, error) {
		return struct{}{}, c.send(ctx, t)
	}
	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}

func (c *TransferClient) send(ctx context.Context, t port.Transfer) error {
	body, err := json.Marshal(transferRequest{Reference: t.Reference, Account: t.Account, Amount: t.Amount})
	if err != nil {
		return backoff.Permanent(fmt.Errorf("marshal transfer: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("transfer request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		// backend trouble, worth retrying
		return fmt.Errorf("transfer backend error: HTTP %d", resp.StatusCode)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return backoff.Permanent(fmt.Errorf("%w: HTTP %d: %s",
			port.ErrTransferDeclined, resp.StatusCode, bytes.TrimSpace(detail)))
	}
}
