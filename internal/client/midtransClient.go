package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/config"
	"github.com/Chifaaan/kdmpxkfa/internal/model"
)

const (
	snapSandboxURL    = "https://app.sandbox.midtrans.com/snap/v1"
	snapProductionURL = "https://app.midtrans.com/snap/v1"
)

type MidtransClient interface {
	CreateSnapTransaction(ctx context.Context, req *model.SnapRequest) (*model.SnapTokenResponse, error)
}

type midtransClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	serverKey  string
}

func NewMidtransClient(midtransCfg *config.Midtrans) MidtransClient {
	baseURL := snapSandboxURL
	if midtransCfg.IsProduction {
		baseURL = snapProductionURL
	}

	return &midtransClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: baseURL,
		serverKey:  midtransCfg.ServerKey,
	}
}

func (c *midtransClientImpl) CreateSnapTransaction(ctx context.Context, snapReq *model.SnapRequest) (*model.SnapTokenResponse, error) {
	body, err := json.Marshal(snapReq)
	if err != nil {
		return nil, fmt.Errorf("marshal snap payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/transactions",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	// server key is the basic-auth username, password left empty
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snap create transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("snap error %d: %s", resp.StatusCode, string(b))
	}

	var result model.SnapTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode snap response: %w", err)
	}

	if result.Token == "" {
		return nil, fmt.Errorf("snap response missing token: %v", result.ErrorMessages)
	}

	return &result, nil
}
