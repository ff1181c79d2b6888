package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultGatewayURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay REST API. Only order (payment intent)
// creation is needed; capture happens on the client and comes back through
// the signed verification callback.
type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	HTTP      *http.Client
}

func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay configuration missing")
	}
	baseURL := os.Getenv("RAZORPAY_API_URL")
	if baseURL == "" {
		baseURL = defaultGatewayURL
	}
	return &Client{KeyID: keyID, KeySecret: keySecret, BaseURL: baseURL, HTTP: &http.Client{}}, nil
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a payment intent with the gateway. Amount is in
// minor currency units (paise); receipt carries our order number for
// reconciliation and notes travel back unchanged in gateway webhooks.
func (cl *Client) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cl.BaseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cl.KeyID, cl.KeySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayError
		if json.Unmarshal(body, &gwErr) == nil && gwErr.Error.Description != "" {
			return nil, fmt.Errorf("gateway error: %s", gwErr.Error.Description)
		}
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned empty order id")
	}
	return &order, nil
}

// VerifySignature recomputes the HMAC-SHA256 the gateway signs its payment
// callback with (hex over "<order_id>|<payment_id>") and compares in
// constant time. This is the trust boundary: a forged callback fails here.
func VerifySignature(gatewayOrderID, gatewayPaymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
