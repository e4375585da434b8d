// Package payment is the bridge to the Razorpay Orders API.
//
// The backend only ever creates a gateway-side order handle; the hosted
// checkout happens in the browser and the client reports the resulting
// payment identifiers back through the orders endpoint.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Gateway is the behavior the order service needs from the payment bridge.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// OrderRequest is the gateway order creation payload. Amount is in the
// currency's minor unit (paise for INR).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order is the gateway's order handle for a pending payment session.
type Order struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// apiError is Razorpay's error envelope.
type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Client talks to the Razorpay REST API with key-pair basic auth.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a gateway client for the given key pair.
func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(keyID, keySecret, baseURL string) *Client {
	c := NewClient(keyID, keySecret)
	c.baseURL = baseURL
	return c
}

// CreateOrder asks the gateway for a new order handle. No local state is
// recorded; the caller forwards the handle to the browser checkout.
func (c *Client) CreateOrder(ctx context.Context, orderReq OrderRequest) (*Order, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(orderReq); err != nil {
		return nil, fmt.Errorf("payment: encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", &buf)
	if err != nil {
		return nil, fmt.Errorf("payment: build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment: create order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payment: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("payment: gateway rejected order: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("payment: unexpected status %s", resp.Status)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("payment: decode order: %w", err)
	}
	return &order, nil
}
