package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solarops/internal/config"
)

func gatewayEnvelope(id string, attrs Intent) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"id":         id,
			"attributes": attrs,
		},
	}
}

func TestClient_CreateIntent(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gatewayEnvelope("pi_abc", Intent{
			Amount:      15000000,
			Status:      "awaiting_payment_method",
			CheckoutURL: "https://pay/abc",
			CreatedAt:   1767590400,
		}))
	}))
	defer srv.Close()

	c := NewClient(config.Gateway{BaseURL: srv.URL, SecretKey: "sk_test"})
	intent, err := c.CreateIntent(context.Background(), 15000000, "Rooftop A — 60% installment")

	assert.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, int64(15000000), intent.Amount)
	assert.Equal(t, "https://pay/abc", intent.CheckoutURL)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test:"))
	assert.Equal(t, wantAuth, gotAuth)

	attrs := gotBody["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, "PHP", attrs["currency"])
	assert.Equal(t, float64(15000000), attrs["amount"])
}

func TestClient_GetIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gatewayEnvelope("pi_abc", Intent{
			Status:    "succeeded",
			CreatedAt: 1767590400,
		}))
	}))
	defer srv.Close()

	c := NewClient(config.Gateway{BaseURL: srv.URL, SecretKey: "sk_test"})
	intent, err := c.GetIntent(context.Background(), "pi_abc")

	assert.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, "succeeded", intent.Status)
}

func TestClient_GetIntent_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(config.Gateway{BaseURL: srv.URL, SecretKey: "sk_test"})
	_, err := c.GetIntent(context.Background(), "pi_missing")

	assert.Error(t, err)
}

func TestClient_IntentCreatedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gatewayEnvelope("pi_abc", Intent{
			CreatedAt: 1767590400,
		}))
	}))
	defer srv.Close()

	c := NewClient(config.Gateway{BaseURL: srv.URL, SecretKey: "sk_test"})
	got, err := c.IntentCreatedAt(context.Background(), "pi_abc")

	assert.NoError(t, err)
	assert.Equal(t, time.Unix(1767590400, 0), got)
}
