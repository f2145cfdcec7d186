package paystack

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/ports"
	"tradefair/src/infra/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PaystackConfig{
		SecretKey: "sk_test_secret",
		BaseURL:   baseURL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shed_1_2_abc", body["reference"])
		assert.Equal(t, float64(50000), body["amount"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/xyz",
				"access_code":       "xyz",
				"reference":         "shed_1_2_abc",
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Initialize(context.Background(), ports.InitializePaymentRequest{
		Reference:  "shed_1_2_abc",
		AmountKobo: 50000,
		Email:      "shop@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/xyz", resp.AuthorizationURL)
	assert.Equal(t, "shed_1_2_abc", resp.Reference)
}

func TestInitializeGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Initialize(context.Background(), ports.InitializePaymentRequest{
		Reference:  "ref",
		AmountKobo: 100,
		Email:      "x@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/preorder_5_2_abc", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"reference": "preorder_5_2_abc",
				"status":    "success",
				"amount":    75000,
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Verify(context.Background(), "preorder_5_2_abc")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(75000), resp.AmountKobo)
}
