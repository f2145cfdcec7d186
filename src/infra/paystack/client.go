// Package paystack implements the payment gateway port against the
// Paystack transaction API.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tradefair/src/core/ports"
	"tradefair/src/infra/config"
)

// Client talks to the Paystack REST API.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	log       *slog.Logger
}

// NewClient creates a Paystack API client.
func NewClient(cfg config.PaystackConfig, log *slog.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
		log:       log,
	}
}

var _ ports.PaymentGateway = (*Client)(nil)

type initializeBody struct {
	Reference   string `json:"reference"`
	Amount      int64  `json:"amount"`
	Email       string `json:"email"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

// Initialize starts a transaction and returns the hosted checkout URL.
func (c *Client) Initialize(ctx context.Context, req ports.InitializePaymentRequest) (*ports.InitializePaymentResponse, error) {
	body := initializeBody{
		Reference:   req.Reference,
		Amount:      req.AmountKobo,
		Email:       req.Email,
		CallbackURL: req.CallbackURL,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	env, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode initialize response: %w", err)
	}

	c.log.Debug("payment initialized", "reference", data.Reference)
	return &ports.InitializePaymentResponse{
		AuthorizationURL: data.AuthorizationURL,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the current status of a transaction by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*ports.VerifyPaymentResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	env, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &ports.VerifyPaymentResponse{
		Reference:  data.Reference,
		Status:     data.Status,
		AmountKobo: data.Amount,
	}, nil
}

// Health probes the API root with an unauthenticated request.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(req *http.Request) (*apiEnvelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Status {
		return nil, fmt.Errorf("gateway error: %s (http %d)", env.Message, resp.StatusCode)
	}
	return &env, nil
}
