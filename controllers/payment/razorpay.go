package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
)

// ErrGatewayUnavailable means the provider call errored or timed out. The
// checkout is blocked; the user may resubmit, there is no automatic retry.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// Gateway talks to the Razorpay Orders API and verifies completed payments.
type Gateway struct {
	keyID     string
	keySecret string
	apiURL    string
	client    *http.Client
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		apiURL:    cfg.RazorpayAPIURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Intent is the provider-side record of an expected charge.
type Intent struct {
	IntentID string `json:"intent_id"`
	// ProviderKey is the publishable key the browser checkout widget needs.
	ProviderKey string `json:"provider_key"`
}

type razorpayOrderResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateIntent registers an expected charge with the provider. Amount is in
// currency units; the provider wants subunits.
func (g *Gateway) CreateIntent(amount float64, currency string) (*Intent, error) {
	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  fmt.Sprintf("rcpt_%d", time.Now().UnixNano()),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, g.apiURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d: %s", ErrGatewayUnavailable, resp.StatusCode, raw)
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(raw, &orderResp); err != nil {
		return nil, fmt.Errorf("%w: malformed provider response: %v", ErrGatewayUnavailable, err)
	}
	if orderResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, orderResp.Error.Description)
	}
	if orderResp.ID == "" {
		return nil, fmt.Errorf("%w: provider returned empty order id", ErrGatewayUnavailable)
	}

	return &Intent{IntentID: orderResp.ID, ProviderKey: g.keyID}, nil
}

// Verify recomputes the HMAC-SHA256 of "intentID|paymentID" with the gateway
// secret and compares it against the client-reported signature in constant
// time. The client's "success" callback is untrusted input; this is the only
// check that makes an order paid. Returns false on mismatch, never an error.
func (g *Gateway) Verify(intentID, paymentID, signature string) bool {
	if intentID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(intentID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
