package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"takeout/pkg/apperr"
)

// HTTP talks to an external gateway over JSON.
//
//	POST {URL}
//	Authorization: Bearer {APIKey}
//	{"orderNumber": "...", "amount": "20.00", "description": "...", "payerId": 7}
//
// The gateway answers {"code": "SUCCESS"|"ORDERPAID"|..., "transactionId": "...", "message": "..."}.
type HTTP struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewHTTP(url, apiKey string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{URL: url, APIKey: apiKey, Client: &http.Client{Timeout: timeout}}
}

type gatewayResponse struct {
	Code          string `json:"code"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

func (g *HTTP) RequestPayment(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperr.Wrap(ErrGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(ErrGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(ErrGateway, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(ErrGateway, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, apperr.Wrap(ErrGateway, fmt.Errorf("status %d: %s", res.StatusCode, bytes.TrimSpace(raw)))
	}

	var out gatewayResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Wrap(ErrGateway, fmt.Errorf("decode response: %w", err))
	}

	result := &Result{TransactionID: out.TransactionID, Code: out.Code, Message: out.Message}
	switch out.Code {
	case CodeSuccess:
		result.Confirmed = true
	case CodeOrderPaid:
		result.AlreadyPaid = true
	}
	return result, nil
}
