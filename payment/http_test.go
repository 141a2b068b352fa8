package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"takeout/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayServer(t *testing.T, status int, body string) (*httptest.Server, *Request) {
	t.Helper()
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestHTTPGateway_Success(t *testing.T) {
	srv, got := newGatewayServer(t, http.StatusOK, `{"code":"SUCCESS","transactionId":"tx-1"}`)
	g := NewHTTP(srv.URL, "secret", time.Second)

	res, err := g.RequestPayment(context.Background(), Request{
		OrderNumber: "20240101120000123", Amount: decimal.RequireFromString("20.00"), PayerID: 7,
	})
	require.NoError(t, err)
	assert.True(t, res.Confirmed)
	assert.False(t, res.AlreadyPaid)
	assert.Equal(t, "tx-1", res.TransactionID)

	assert.Equal(t, "20240101120000123", got.OrderNumber)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, uint(7), got.PayerID)
}

func TestHTTPGateway_OrderPaid(t *testing.T) {
	srv, _ := newGatewayServer(t, http.StatusOK, `{"code":"ORDERPAID"}`)
	res, err := NewHTTP(srv.URL, "secret", time.Second).RequestPayment(context.Background(), Request{OrderNumber: "n"})
	require.NoError(t, err)
	assert.True(t, res.AlreadyPaid)
	assert.False(t, res.Confirmed)
}

func TestHTTPGateway_Declined(t *testing.T) {
	srv, _ := newGatewayServer(t, http.StatusOK, `{"code":"INSUFFICIENT_FUNDS","message":"nope"}`)
	res, err := NewHTTP(srv.URL, "secret", time.Second).RequestPayment(context.Background(), Request{OrderNumber: "n"})
	require.NoError(t, err)
	assert.False(t, res.Confirmed)
	assert.False(t, res.AlreadyPaid)
	assert.Equal(t, "INSUFFICIENT_FUNDS", res.Code)
}

func TestHTTPGateway_ServerError(t *testing.T) {
	srv, _ := newGatewayServer(t, http.StatusInternalServerError, `boom`)
	_, err := NewHTTP(srv.URL, "secret", time.Second).RequestPayment(context.Background(), Request{OrderNumber: "n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGateway))
	assert.Equal(t, apperr.KindExternalDependency, apperr.KindOf(err))
}

func TestHTTPGateway_BadJSON(t *testing.T) {
	srv, _ := newGatewayServer(t, http.StatusOK, `not json`)
	_, err := NewHTTP(srv.URL, "secret", time.Second).RequestPayment(context.Background(), Request{OrderNumber: "n"})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestSimulated_SecondPaymentIsOrderPaid(t *testing.T) {
	g := NewSimulated()
	first, err := g.RequestPayment(context.Background(), Request{OrderNumber: "A"})
	require.NoError(t, err)
	assert.True(t, first.Confirmed)

	second, err := g.RequestPayment(context.Background(), Request{OrderNumber: "A"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyPaid)
	assert.Equal(t, first.TransactionID, second.TransactionID)
}
