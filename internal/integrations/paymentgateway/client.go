package paymentgateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
)

// Client клиент платежного шлюза (Stripe)
type Client struct {
	refunds *refund.Client
	log     Logger
}

// NewClient создает клиент Stripe с ключом secretKey
// backend == nil - используется стандартный API backend Stripe
func NewClient(secretKey string, backend stripe.Backend, log Logger) *Client {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	return &Client{
		refunds: &refund.Client{B: backend, Key: secretKey},
		log:     log,
	}
}

// Refund возвращает amount по платежу paymentRef
// paymentRef - PaymentIntent (pi_...) или Charge (ch_...).
// idempotencyKey гарантирует, что повторный вызов не создаст второй возврат
func (c *Client) Refund(ctx context.Context, paymentRef string, amount float64, idempotencyKey string) (*Refund, error) {
	if paymentRef == "" || amount <= 0 {
		return nil, fmt.Errorf("%w: payment_ref=%q amount=%.2f", ErrInvalidRefund, paymentRef, amount)
	}

	params := &stripe.RefundParams{
		Amount: stripe.Int64(toMinorUnits(amount)),
	}
	if strings.HasPrefix(paymentRef, "ch_") {
		params.Charge = stripe.String(paymentRef)
	} else {
		params.PaymentIntent = stripe.String(paymentRef)
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)
	params.AddMetadata("idempotency_key", idempotencyKey)

	c.log.Info("Requesting refund: payment_ref=%s, amount=%.2f, key=%s", paymentRef, amount, idempotencyKey)

	result, err := c.refunds.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.log.Error("Stripe rejected refund: payment_ref=%s, code=%s, status=%d: %s",
				paymentRef, stripeErr.Code, stripeErr.HTTPStatusCode, stripeErr.Msg)
			return nil, fmt.Errorf("%w: %s (%s)", ErrRefundFailed, stripeErr.Msg, stripeErr.Code)
		}
		c.log.Error("Refund request failed: payment_ref=%s: %v", paymentRef, err)
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	if result.Status == stripe.RefundStatusFailed || result.Status == stripe.RefundStatusCanceled {
		return nil, fmt.Errorf("%w: refund %s has status %s", ErrRefundFailed, result.ID, result.Status)
	}

	c.log.Info("Refund created: id=%s, status=%s", result.ID, result.Status)

	return &Refund{
		ID:     result.ID,
		Amount: fromMinorUnits(result.Amount),
		Status: string(result.Status),
	}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
