package zarinpal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{MerchantID: "merchant-1", BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestRequestPayment_ScalesAmountAndReturnsAuthority(t *testing.T) {
	var got requestBody
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pg/v4/payment/request.json", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"code":100,"message":"Success","authority":"A000000000000000000000000000abcd"},"errors":[]}`))
	})

	authority, err := client.RequestPayment(context.Background(), PaymentRequest{
		Amount:      1_000_000,
		Description: "Room reservation",
		CallbackURL: "http://localhost/verify",
		Mobile:      "09123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "A000000000000000000000000000abcd", authority)
	assert.Equal(t, int64(10_000_000), got.Amount)
	assert.Equal(t, "merchant-1", got.MerchantID)
	assert.Equal(t, "09123456789", got.Metadata["mobile"])
}

func TestRequestPayment_GatewayError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"data":[],"errors":{"code":-9,"message":"The input params invalid, validation error."}}`))
	})

	_, err := client.RequestPayment(context.Background(), PaymentRequest{Amount: 10})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, -9, apiErr.Code)
}

func TestRequestPayment_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(Config{MerchantID: "m", BaseURL: srv.URL, Timeout: time.Second})

	_, err := client.RequestPayment(context.Background(), PaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestVerifyPayment_Outcomes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want VerifyStatus
		code int
	}{
		{"confirmed", `{"data":{"code":100,"message":"Paid","ref_id":201,"card_pan":"5022-29**-****-2328"},"errors":[]}`, VerifyConfirmed, 100},
		{"already verified", `{"data":{"code":101,"message":"Verified","ref_id":201},"errors":[]}`, VerifyAlreadyProcessed, 101},
		{"other code", `{"data":{"code":102,"message":"Merchant not found"},"errors":[]}`, VerifyRejected, 102},
		{"error object", `{"data":[],"errors":{"code":-51,"message":"Session is not valid"}}`, VerifyRejected, -51},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got verifyBody
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/pg/v4/payment/verify.json", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				_, _ = w.Write([]byte(tc.body))
			})

			res, err := client.VerifyPayment(context.Background(), 1_000_000, "A-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
			assert.Equal(t, tc.code, res.Code)
			assert.NotEmpty(t, res.Raw)
			assert.Equal(t, int64(10_000_000), got.Amount)
			assert.Equal(t, "A-1", got.Authority)
		})
	}
}

func TestVerifyPayment_BadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream down</html>`))
	})

	_, err := client.VerifyPayment(context.Background(), 100, "A-1")
	assert.ErrorIs(t, err, ErrGateway)
}

func TestStartPayURL(t *testing.T) {
	assert.Equal(t, "https://sandbox.zarinpal.com/pg/StartPay/A-1", New(Config{Sandbox: true}).StartPayURL("A-1"))
	assert.Equal(t, "https://payment.zarinpal.com/pg/StartPay/A-1", New(Config{}).StartPayURL("A-1"))
}
