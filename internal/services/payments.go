package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/metrics"
)

// MaxMinorUnits is the largest amount a single intent may carry.
const MaxMinorUnits = 99_999_999

// IntentCreator creates a card payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{api: sc}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

type PaymentService struct {
	gateway  IntentCreator
	currency string
	logger   *zap.Logger
}

func NewPaymentService(gateway IntentCreator, currency string, logger *zap.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, currency: strings.ToLower(currency), logger: logger}
}

// ParsePrice accepts a JSON number or a numeric string.
func ParsePrice(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, apperr.Validation("price must be a number")
		}
		return f, nil
	case nil:
		return 0, apperr.Validation("price is required")
	default:
		return 0, apperr.Validation("price must be a number")
	}
}

// ToMinorUnits converts a price in major units to cents, rounding half away
// from zero.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperr.Validation("price must be a finite number")
	}
	if price <= 0 {
		return 0, apperr.Validation("price must be positive")
	}
	amount := math.Round(price * 100)
	if amount < 1 {
		return 0, apperr.Validation("price is below the smallest chargeable amount")
	}
	if amount > MaxMinorUnits {
		return 0, apperr.Validation("price exceeds the maximum chargeable amount")
	}
	return int64(amount), nil
}

// CreatePaymentIntent validates price and asks the gateway for an intent.
// Gateway failures are logged and returned as internal errors.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	amount, err := ToMinorUnits(price)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("rejected").Inc()
		return "", err
	}

	secret, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("failed").Inc()
		fields := []zap.Field{zap.Int64("amount", amount), zap.String("currency", s.currency), zap.Error(err)}
		var serr *stripe.Error
		if errors.As(err, &serr) {
			fields = append(fields,
				zap.String("stripe_type", string(serr.Type)),
				zap.String("stripe_code", string(serr.Code)),
				zap.String("stripe_request_id", serr.RequestID),
				zap.Int("stripe_status", serr.HTTPStatusCode),
			)
		}
		s.logger.Error("create payment intent failed", fields...)
		return "", apperr.Internal("create payment intent", err)
	}

	metrics.PaymentIntents.WithLabelValues("created").Inc()
	return secret, nil
}
