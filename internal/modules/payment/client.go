package payment

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"solarops/internal/config"
)

// Intent mirrors the gateway's payment-intent attributes. The gateway
// is a read-only oracle for settlement state; only the rows in the
// payments table are ours.
type Intent struct {
	ID          string        `json:"id"`
	Amount      int64         `json:"amount"`
	Status      string        `json:"status"`
	CreatedAt   int64         `json:"created_at"`
	Fee         int64         `json:"fee"`
	CheckoutURL string        `json:"checkout_url"`
	Payments    []IntentEvent `json:"payments"`
}

// IntentEvent is one settlement attempt attached to an intent.
type IntentEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
	PaidAt int64  `json:"paid_at"`
}

type intentEnvelope struct {
	Data struct {
		ID         string `json:"id"`
		Attributes Intent `json:"attributes"`
	} `json:"data"`
}

// Client talks to the payment-intent gateway over HTTP.
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.Gateway) *Client {
	auth := base64.StdEncoding.EncodeToString([]byte(cfg.SecretKey + ":"))
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Authorization", "Basic "+auth).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

// CreateIntent registers a new payment intent for the given amount in
// the gateway's minor currency unit.
func (c *Client) CreateIntent(ctx context.Context, amount int64, description string) (*Intent, error) {
	var out intentEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"data": map[string]any{
				"attributes": map[string]any{
					"amount":      amount,
					"description": description,
					"currency":    "PHP",
				},
			},
		}).
		SetResult(&out).
		Post("/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("create intent: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create intent: gateway returned %s", resp.Status())
	}

	intent := out.Data.Attributes
	intent.ID = out.Data.ID
	return &intent, nil
}

// GetIntent fetches current settlement attributes for an intent.
func (c *Client) GetIntent(ctx context.Context, id string) (*Intent, error) {
	var out intentEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/payment_intents/" + id)
	if err != nil {
		return nil, fmt.Errorf("get intent %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get intent %s: gateway returned %s", id, resp.Status())
	}

	intent := out.Data.Attributes
	intent.ID = out.Data.ID
	return &intent, nil
}

// IntentCreatedAt satisfies the scheduler's payment oracle: the
// project date window anchors on when the intent was created.
func (c *Client) IntentCreatedAt(ctx context.Context, intentID string) (time.Time, error) {
	intent, err := c.GetIntent(ctx, intentID)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(intent.CreatedAt, 0), nil
}
