package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seva/internal/logger"
)

const defaultCurrency = "INR"

// RazorpayClient implements Gateway over the Razorpay Orders REST API.
type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	now        func() time.Time
}

func NewRazorpayClient(baseURL, keyID, keySecret string) *RazorpayClient {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
}

// KeyID is the public key the checkout widget needs.
func (c *RazorpayClient) KeyID() string { return c.keyID }

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amount decimal.Decimal) (string, error) {
	defer logger.DeferLogDuration("razorpay.CreateOrder", time.Now())()
	if c.keyID == "" || c.keySecret == "" {
		return "", fmt.Errorf("%w: gateway credentials not configured", ErrGateway)
	}
	minor := ToMinorUnits(amount)
	if minor <= 0 {
		return "", fmt.Errorf("%w: amount must be positive, got %s", ErrGateway, amount.String())
	}
	body, err := json.Marshal(createOrderRequest{
		Amount:   minor,
		Currency: defaultCurrency,
		Receipt:  "txn_" + strconv.FormatInt(c.now().UnixMilli(), 10),
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode order: %v", ErrGateway, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGateway, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrGateway, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error.Description != "" {
			return "", fmt.Errorf("%w: %d %s: %s", ErrGateway, resp.StatusCode, e.Error.Code, e.Error.Description)
		}
		return "", fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}
	var order orderResponse
	if err := json.Unmarshal(raw, &order); err != nil {
		return "", fmt.Errorf("%w: decode order: %v", ErrGateway, err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("%w: order id missing in response", ErrGateway)
	}
	return order.ID, nil
}
