package paymentgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	return NewClient("sk_test_123", backend, logger.NewNop())
}

func TestRefund_PaymentIntent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "booking-42-refund", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "pi_abc", r.PostForm.Get("payment_intent"))
		assert.Equal(t, "150050", r.PostForm.Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_1","object":"refund","amount":150050,"status":"succeeded","currency":"usd"}`))
	})

	refund, err := client.Refund(context.Background(), "pi_abc", 1500.50, "booking-42-refund")

	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
	assert.Equal(t, 1500.50, refund.Amount)
	assert.Equal(t, "succeeded", refund.Status)
}

func TestRefund_ChargeReference(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ch_xyz", r.PostForm.Get("charge"))
		assert.Empty(t, r.PostForm.Get("payment_intent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_2","object":"refund","amount":1000,"status":"pending"}`))
	})

	refund, err := client.Refund(context.Background(), "ch_xyz", 10, "booking-7-refund")

	require.NoError(t, err)
	assert.Equal(t, "re_2", refund.ID)
}

func TestRefund_StripeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"charge_already_refunded","message":"Charge has already been refunded."}}`))
	})

	_, err := client.Refund(context.Background(), "pi_abc", 10, "booking-1-refund")

	assert.ErrorIs(t, err, ErrRefundFailed)
	assert.ErrorIs(t, err, domain.ErrPaymentGateway)
}

func TestRefund_FailedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_3","object":"refund","amount":1000,"status":"failed"}`))
	})

	_, err := client.Refund(context.Background(), "pi_abc", 10, "booking-1-refund")
	assert.ErrorIs(t, err, ErrRefundFailed)
}

func TestRefund_InvalidRequest(t *testing.T) {
	client := NewClient("sk_test_123", nil, logger.NewNop())

	_, err := client.Refund(context.Background(), "", 10, "k")
	assert.ErrorIs(t, err, ErrInvalidRefund)

	_, err = client.Refund(context.Background(), "pi_abc", 0, "k")
	assert.ErrorIs(t, err, ErrInvalidRefund)
}
