package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Typed errors so callers never have to classify failures by message text.
var (
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrTenantNotMapped     = errors.New("tenant not mapped to a fulfilling pharmacy")
)

// CreditClient checks a tenant's available purchase credit with the
// cooperative credit-limit service before a credit-funded checkout commits.
type CreditClient interface {
	EnsureAvailable(ctx context.Context, tenantID string, amount int64) error
}

type creditClientImpl struct {
	httpClient *http.Client
	baseURL    string
}

func NewCreditClient(baseURL string) CreditClient {
	return &creditClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *creditClientImpl) EnsureAvailable(ctx context.Context, tenantID string, amount int64) error {
	url := fmt.Sprintf("%s/api/tenants/%s/credit", c.baseURL, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create credit request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("credit service request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrTenantNotMapped
	default:
		return fmt.Errorf("credit service status %d", resp.StatusCode)
	}

	var res struct {
		Limit int64 `json:"limit"`
		Used  int64 `json:"used"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("decode credit response: %w", err)
	}

	if res.Limit-res.Used < amount {
		return ErrCreditLimitExceeded
	}
	return nil
}
