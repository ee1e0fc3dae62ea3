// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

type PaymentService struct {
	ledger        *ledger.Client
	cache         *cache.QueryCache
	orders        *OrderService
	products      *ProductService
	notifications *NotificationService
	config        *config.Config
	split         dashboard.Split

	mu        sync.RWMutex
	stripeKey string
	backend   stripe.Backend
}

type CheckoutRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret  string           `json:"client_secret"`
	PaymentID     string           `json:"payment_id"`
	Status        string           `json:"status"`
	OrderID       string           `json:"order_id"`
	Amount        int64            `json:"amount"`
	Currency      string           `json:"currency"`
	ExpectedSplit dashboard.Shares `json:"expected_split"`
}

type PaymentAudit struct {
	Checked    int                        `json:"checked"`
	Violations []dashboard.SplitViolation `json:"violations"`
	Totals     dashboard.PaymentTotals    `json:"totals"`
	Available  bool                       `json:"available"`
}

type ArtistPayments struct {
	Payments  []dashboard.PaymentRow         `json:"payments"`
	Totals    dashboard.PaymentTotals        `json:"totals"`
	Summary   *models.ArtistDashboardSummary `json:"summary,omitempty"`
	Available bool                           `json:"available"`
}

func NewPaymentService(client *ledger.Client, queryCache *cache.QueryCache, orders *OrderService, products *ProductService, notifications *NotificationService, cfg *config.Config) *PaymentService {
	return &PaymentService{
		ledger:        client,
		cache:         queryCache,
		orders:        orders,
		products:      products,
		notifications: notifications,
		config:        cfg,
		split:         dashboard.NewSplit(cfg.Payment.ArtistPercent, cfg.Payment.HubPercent, cfg.Payment.PlatformPercent),
		stripeKey:     cfg.Payment.StripeSecretKey,
		backend:       stripe.GetBackend(stripe.APIBackend),
	}
}

// UseStripeBackend replaces the Stripe API backend.
func (s *PaymentService) UseStripeBackend(backend stripe.Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
}

func (s *PaymentService) Split() dashboard.Split {
	return s.split
}

func (s *PaymentService) ListAll(ctx context.Context, session ledger.Session) (ListResult[models.Payment], error) {
	return degrade(s.all(ctx, session))
}

func (s *PaymentService) all(ctx context.Context, session ledger.Session) ([]models.Payment, error) {
	return cached(ctx, s.cache, session, cache.Payments, func(ctx context.Context) ([]models.Payment, error) {
		return s.ledger.GetPayments(ctx, session)
	})
}

func (s *PaymentService) forArtist(ctx context.Context, session ledger.Session) ([]models.Payment, error) {
	return cached(ctx, s.cache, session, cache.ArtistPayments, func(ctx context.Context) ([]models.Payment, error) {
		return s.ledger.GetArtistPayments(ctx, session, session.Principal)
	})
}

// ListForArtist returns the caller's payments with totals and the ledger dashboard summary.
func (s *PaymentService) ListForArtist(ctx context.Context, session ledger.Session) (*ArtistPayments, error) {
	payments, err := s.forArtist(ctx, session)
	if err != nil {
		if ledger.IsUnavailable(err) {
			return &ArtistPayments{Payments: []dashboard.PaymentRow{}}, nil
		}
		return nil, err
	}

	summary, err := s.DashboardSummary(ctx, session)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}

	analytics := dashboard.ArtistAnalytics(nil, payments)
	return &ArtistPayments{
		Payments:  analytics.Payments,
		Totals:    dashboard.SummarizePayments(payments),
		Summary:   summary,
		Available: true,
	}, nil
}

func (s *PaymentService) DashboardSummary(ctx context.Context, session ledger.Session) (*models.ArtistDashboardSummary, error) {
	return cached(ctx, s.cache, session, cache.ArtistDashboardSummary, func(ctx context.Context) (*models.ArtistDashboardSummary, error) {
		return s.ledger.GetArtistDashboardSummary(ctx, session, session.Principal)
	})
}

// Audit checks every payment against the configured split. Violations are
// reported and recorded as notifications; payments are never altered.
func (s *PaymentService) Audit(ctx context.Context, session ledger.Session) (*PaymentAudit, error) {
	payments, err := s.all(ctx, session)
	if err != nil {
		if ledger.IsUnavailable(err) {
			return &PaymentAudit{Violations: []dashboard.SplitViolation{}}, nil
		}
		return nil, err
	}

	return &PaymentAudit{
		Checked:    len(payments),
		Violations: s.RecordViolations(payments),
		Totals:     dashboard.SummarizePayments(payments),
		Available:  true,
	}, nil
}

// RecordViolations logs and records a notification for each payment that
// disagrees with the split.
func (s *PaymentService) RecordViolations(payments []models.Payment) []dashboard.SplitViolation {
	violations := dashboard.AuditPayments(payments, s.split)
	for _, v := range violations {
		logrus.WithFields(logrus.Fields{
			"payment_id": v.PaymentID,
			"order_id":   v.OrderID,
			"total":      v.Total,
			"reasons":    v.Reasons,
		}).Warn("Payment split anomaly")

		if s.notifications == nil {
			continue
		}
		if err := s.notifications.SplitAnomaly(v); err != nil {
			logrus.WithError(err).WithField("payment_id", v.PaymentID).Error("Failed to record split anomaly notification")
		}
	}
	return violations
}

func (s *PaymentService) StripeConfigured(ctx context.Context, session ledger.Session) (bool, error) {
	return cached(ctx, s.cache, session, cache.StripeConfigured, func(ctx context.Context) (bool, error) {
		return s.ledger.IsStripeConfigured(ctx, session)
	})
}

// SetStripeConfiguration stores the keys on the ledger and uses the API key
// for checkout from then on.
func (s *PaymentService) SetStripeConfiguration(ctx context.Context, session ledger.Session, cfg *models.StripeConfiguration) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if err := s.ledger.SetStripeConfiguration(ctx, session, *cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.stripeKey = cfg.APIKey
	s.mu.Unlock()

	s.cache.Invalidate(cache.StripeMutation...)
	logMutation(session, "set_stripe_configuration", "")
	return nil
}

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// orderAmount is price x quantity in the smallest currency unit. Products whose
// total does not fit in int64 are rejected, never wrapped.
func orderAmount(price, quantity int64) (int64, error) {
	total := decimal.NewFromInt(price).Mul(decimal.NewFromInt(quantity))
	if !total.IsPositive() {
		return 0, fmt.Errorf("%w: order amount must be positive", models.ErrInvalidInput)
	}
	if total.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("order amount %s: %w", total.String(), ledger.ErrNumericOverflow)
	}
	return total.IntPart(), nil
}

// CreateCheckoutIntent creates a Stripe PaymentIntent for price x quantity of the order.
func (s *PaymentService) CreateCheckoutIntent(ctx context.Context, session ledger.Session, req *CheckoutRequest) (*PaymentIntentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.RLock()
	key, backend := s.stripeKey, s.backend
	s.mu.RUnlock()
	if key == "" {
		return nil, fmt.Errorf("stripe: %w", models.ErrNotConfigured)
	}

	order, err := s.orders.Get(ctx, session, req.OrderID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Get(ctx, session, order.ProductID)
	if err != nil {
		return nil, err
	}

	amount, err := orderAmount(product.Price, order.Quantity)
	if err != nil {
		return nil, err
	}

	currency := s.config.Payment.Currency
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID)
	params.AddMetadata("product_id", product.ID)
	params.AddMetadata("buyer", session.Principal)
	params.AddMetadata("artist", product.Artist)
	params.AddMetadata("quantity", strconv.FormatInt(order.Quantity, 10))

	intents := paymentintent.Client{B: backend, Key: key}
	pi, err := intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": pi.ID,
		"amount":     amount,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		ClientSecret:  pi.ClientSecret,
		PaymentID:     pi.ID,
		Status:        string(pi.Status),
		OrderID:       order.ID,
		Amount:        amount,
		Currency:      currency,
		ExpectedSplit: dashboard.ExpectedSplit(amount, s.split),
	}, nil
}
