// Package treasury is the client for the external payout service that holds
// the casino's on-chain funds. The casino never signs transactions itself;
// deposits are verified against the treasury's view of the chain and claims
// are sent through it.
package treasury

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds configuration for the treasury client.
type Config struct {
	// BaseURL is the treasury service endpoint, e.g. "https://treasury.internal".
	BaseURL string

	// Token is the bearer credential for the treasury API.
	Token string

	// HTTPClient allows injecting a custom HTTP client (useful for testing).
	// Defaults to a client with 30s timeout.
	HTTPClient *http.Client
}

// Client talks to the treasury service. It implements service.FundsTransfer.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a new treasury client with the given configuration.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    httpClient,
	}
}

type depositStatus struct {
	TxHash      string `json:"txHash"`
	Amount      int64  `json:"amount"`
	FromAddress string `json:"fromAddress"`
	Confirmed   bool   `json:"confirmed"`
}

type sendRequest struct {
	ToAddress string `json:"toAddress"`
	Amount    int64  `json:"amount"`
}

type sendResponse struct {
	TxHash string `json:"txHash"`
}

// VerifyDeposit asks the treasury to confirm an inbound transaction and
// returns its amount in cents and the sender address.
func (c *Client) VerifyDeposit(ctx context.Context, txHash string) (int64, string, error) {
	var status depositStatus
	if err := c.do(ctx, http.MethodGet, "/v1/deposits/"+txHash, nil, &status); err != nil {
		return 0, "", err
	}
	if !status.Confirmed {
		return 0, "", fmt.Errorf("transaction %s is not confirmed", txHash)
	}
	return status.Amount, status.FromAddress, nil
}

// Send asks the treasury to transfer amount cents to the given address and
// returns the resulting transaction hash.
func (c *Client) Send(ctx context.Context, toAddress string, amount int64) (string, error) {
	var resp sendResponse
	err := c.do(ctx, http.MethodPost, "/v1/transfers", sendRequest{
		ToAddress: toAddress,
		Amount:    amount,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.TxHash == "" {
		return "", fmt.Errorf("treasury returned no transaction hash")
	}
	return resp.TxHash, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("treasury: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("treasury: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("treasury: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("treasury: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("treasury: %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("treasury: decode response: %w", err)
	}
	return nil
}
