// Package zarinpal is a client for the Zarinpal v4 payment gateway.
package zarinpal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	SandboxBaseURL    = "https://sandbox.zarinpal.com"
	ProductionBaseURL = "https://payment.zarinpal.com"

	// CurrencyFactor converts application prices to the gateway currency.
	CurrencyFactor = 10

	CodeSuccess         = 100
	CodeAlreadyVerified = 101

	defaultTimeout = 10 * time.Second
)

// ErrGateway marks transport failures: the gateway was unreachable, timed
// out, or answered with something that is not a gateway response.
var ErrGateway = errors.New("payment gateway unavailable")

// APIError is a well-formed gateway answer carrying a non-success code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zarinpal: code %d: %s", e.Code, e.Message)
}

type Config struct {
	MerchantID string
	BaseURL    string
	Sandbox    bool
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	merchantID string
	baseURL    string
	http       *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = ProductionBaseURL
		if cfg.Sandbox {
			base = SandboxBaseURL
		}
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{merchantID: cfg.MerchantID, baseURL: base, http: hc}
}

type PaymentRequest struct {
	Amount      int64
	Description string
	CallbackURL string
	Mobile      string
	Email       string
}

type VerifyStatus int

const (
	VerifyRejected VerifyStatus = iota
	VerifyConfirmed
	VerifyAlreadyProcessed
)

func (s VerifyStatus) String() string {
	switch s {
	case VerifyConfirmed:
		return "confirmed"
	case VerifyAlreadyProcessed:
		return "already_processed"
	default:
		return "rejected"
	}
}

type VerifyResult struct {
	Status  VerifyStatus
	Code    int
	Message string
	RefID   int64
	CardPan string
	// Raw is the gateway response body, kept for the audit trail.
	Raw json.RawMessage
}

type requestBody struct {
	MerchantID  string            `json:"merchant_id"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type verifyBody struct {
	MerchantID string `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Authority  string `json:"authority"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type resultData struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Authority string `json:"authority"`
	RefID     int64  `json:"ref_id"`
	CardPan   string `json:"card_pan"`
}

// RequestPayment opens a payment for req.Amount application units and
// returns the gateway authority.
func (c *Client) RequestPayment(ctx context.Context, req PaymentRequest) (string, error) {
	body := requestBody{
		MerchantID:  c.merchantID,
		Amount:      req.Amount * CurrencyFactor,
		Description: req.Description,
		CallbackURL: req.CallbackURL,
	}
	if req.Mobile != "" || req.Email != "" {
		body.Metadata = map[string]string{}
		if req.Mobile != "" {
			body.Metadata["mobile"] = req.Mobile
		}
		if req.Email != "" {
			body.Metadata["email"] = req.Email
		}
	}

	data, _, err := c.post(ctx, "/pg/v4/payment/request.json", body)
	if err != nil {
		return "", err
	}
	if data.Code != CodeSuccess || data.Authority == "" {
		return "", &APIError{Code: data.Code, Message: data.Message}
	}
	return data.Authority, nil
}

// StartPayURL is where the guest is sent to pay for authority.
func (c *Client) StartPayURL(authority string) string {
	return c.baseURL + "/pg/StartPay/" + authority
}

// VerifyPayment settles authority for amount application units. Gateway
// rejections come back as a result with VerifyRejected; only transport
// failures return an error.
func (c *Client) VerifyPayment(ctx context.Context, amount int64, authority string) (*VerifyResult, error) {
	data, raw, err := c.post(ctx, "/pg/v4/payment/verify.json", verifyBody{
		MerchantID: c.merchantID,
		Amount:     amount * CurrencyFactor,
		Authority:  authority,
	})
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &VerifyResult{Status: VerifyRejected, Code: apiErr.Code, Message: apiErr.Message, Raw: raw}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &VerifyResult{Code: data.Code, Message: data.Message, RefID: data.RefID, CardPan: data.CardPan, Raw: raw}
	switch data.Code {
	case CodeSuccess:
		res.Status = VerifyConfirmed
	case CodeAlreadyVerified:
		res.Status = VerifyAlreadyProcessed
	default:
		res.Status = VerifyRejected
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*resultData, json.RawMessage, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read body: %v", ErrGateway, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, raw, fmt.Errorf("%w: status %d: undecodable body", ErrGateway, resp.StatusCode)
	}

	var apiErr resultData
	if decodeObject(env.Errors, &apiErr) && apiErr.Code != 0 {
		return nil, raw, &APIError{Code: apiErr.Code, Message: apiErr.Message}
	}
	var data resultData
	if !decodeObject(env.Data, &data) {
		return nil, raw, fmt.Errorf("%w: status %d: missing data", ErrGateway, resp.StatusCode)
	}
	return &data, raw, nil
}

// decodeObject fills v when raw is a JSON object. The gateway sends an empty
// array in place of absent objects.
func decodeObject(raw json.RawMessage, v any) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Unmarshal(trimmed, v) == nil
}
