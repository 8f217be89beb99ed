package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stripe/stripe-go/v82"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/payment"
	"github.com/dioprayoga/garasi/backend-go/internal/worker"
)

// Stripe IDR transaction bounds, in sen (1 Rupiah = 100 sen).
const (
	minChargeSen = 700_000         // IDR 7,000
	maxChargeSen = 200_000_000_000 // IDR 2,000,000,000
)

// PaymentConfirmation is what the success-redirect path reports back to the
// client after the session has been re-retrieved from the provider.
type PaymentConfirmation struct {
	CarID     uint   `json:"car_id"`
	UserID    uint   `json:"user_id"`
	PaymentID string `json:"payment_id"`
}

// PaymentService defines the interface for the checkout flow
type PaymentService interface {
	CreateCheckoutSession(carID, userID uint) (*payment.CheckoutSession, error)
	HandleSuccess(sessionID string) (*PaymentConfirmation, error)
	HandleWebhook(payload []byte, signature string) error
}

type paymentService struct {
	carRepo      repository.CarRepository
	wishlistRepo repository.WishlistRepository
	orderRepo    repository.OrderRepository
	client       payment.CheckoutClient
	pool         *worker.Pool
	cfg          *config.Config
	logger       *slog.Logger
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(
	carRepo repository.CarRepository,
	wishlistRepo repository.WishlistRepository,
	orderRepo repository.OrderRepository,
	client payment.CheckoutClient,
	pool *worker.Pool,
	cfg *config.Config,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		carRepo:      carRepo,
		wishlistRepo: wishlistRepo,
		orderRepo:    orderRepo,
		client:       client,
		pool:         pool,
		cfg:          cfg,
		logger:       logger,
	}
}

// CreateCheckoutSession builds a single-line-item hosted session for the car.
// The charge itself, card handling, and receipts belong to Stripe; this only
// validates the amount against Stripe's IDR limits and hands over metadata.
func (s *paymentService) CreateCheckoutSession(carID, userID uint) (*payment.CheckoutSession, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, err
	}

	amountSen := car.Price * 100
	if amountSen > maxChargeSen {
		s.logger.Warn("⚠️ [PaymentService] Price above Stripe IDR maximum", "car_id", carID, "price", car.Price)
		return nil, fmt.Errorf("%w: harga mobil (Rp %s) melebihi batas maksimum Stripe IDR 2.000.000.000, silakan hubungi support untuk metode pembayaran alternatif", ErrAmountAboveLimit, formatRupiah(car.Price))
	}
	if amountSen < minChargeSen {
		s.logger.Warn("⚠️ [PaymentService] Price below Stripe IDR minimum", "car_id", carID, "price", car.Price)
		return nil, fmt.Errorf("%w: harga mobil minimal IDR 7.000 untuk pemrosesan pembayaran", ErrAmountBelowLimit)
	}

	item := payment.LineItem{
		Name:        car.DisplayName(),
		Description: fmt.Sprintf("Fuel: %s, Year: %s", car.Fuel, car.ReleasedYear),
		ImageURL:    car.ImageURL,
		AmountSen:   amountSen,
	}
	metadata := map[string]string{
		"carId":  strconv.FormatUint(uint64(carID), 10),
		"userId": strconv.FormatUint(uint64(userID), 10),
	}
	successURL := s.cfg.ClientBaseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := s.cfg.ClientBaseURL + "/?payment=cancelled"

	session, err := s.client.CreateSession(item, successURL, cancelURL, metadata)
	if err != nil {
		s.logger.Error("❌ [PaymentService] Failed to create checkout session", "car_id", carID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PaymentService] Checkout session created",
		"session_id", session.ID,
		"car_id", carID,
		"user_id", userID,
	)
	return session, nil
}

// HandleSuccess is the client-redirect confirmation path: the session is
// re-retrieved from the provider to recover the metadata, and the purchased
// car leaves the buyer's wishlist. A missing wishlist row is fine; the
// webhook may have removed it already.
func (s *paymentService) HandleSuccess(sessionID string) (*PaymentConfirmation, error) {
	session, err := s.client.GetSession(sessionID)
	if err != nil {
		s.logger.Error("❌ [PaymentService] Failed to retrieve session", "session_id", sessionID, "error", err)
		return nil, err
	}

	carID, userID, err := parseSessionMetadata(session.Metadata)
	if err != nil {
		s.logger.Error("❌ [PaymentService] Session metadata malformed", "session_id", sessionID, "error", err)
		return nil, err
	}

	if err := s.wishlistRepo.DeleteByUserAndCar(userID, carID); err != nil {
		s.logger.Error("❌ [PaymentService] Failed to clear wishlist entry", "session_id", sessionID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PaymentService] Payment confirmed", "session_id", sessionID, "car_id", carID, "user_id", userID)
	return &PaymentConfirmation{
		CarID:     carID,
		UserID:    userID,
		PaymentID: session.PaymentIntent,
	}, nil
}

// HandleWebhook verifies the provider signature and reacts to completed
// checkouts: the wishlist row goes away idempotently and a durable order row
// is written off the request goroutine.
func (s *paymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := s.client.ConstructEvent(payload, signature)
	if err != nil {
		s.logger.Warn("⚠️ [PaymentService] Webhook signature verification failed", "error", err)
		return fmt.Errorf("%w: %v", ErrWebhookSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		s.logger.Debug("📨 [PaymentService] Ignoring webhook event", "type", event.Type)
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.logger.Error("❌ [PaymentService] Failed to decode webhook session", "error", err)
		return fmt.Errorf("decode webhook session: %w", err)
	}

	carID, userID, err := parseSessionMetadata(session.Metadata)
	if err != nil {
		s.logger.Error("❌ [PaymentService] Webhook metadata malformed", "session_id", session.ID, "error", err)
		return err
	}

	s.logger.Info("💳 [PaymentService] Payment completed",
		"session_id", session.ID,
		"car_id", carID,
		"user_id", userID,
		"amount_total", session.AmountTotal,
	)

	if err := s.wishlistRepo.DeleteByUserAndCar(userID, carID); err != nil {
		s.logger.Error("❌ [PaymentService] Failed to clear wishlist entry", "session_id", session.ID, "error", err)
	}

	order := &models.Order{
		UserID:          userID,
		CarID:           carID,
		StripeSessionID: session.ID,
		Amount:          session.AmountTotal,
		Status:          "paid",
	}
	s.pool.Submit(func(ctx context.Context) {
		s.recordOrder(order)
	})

	return nil
}

func (s *paymentService) recordOrder(order *models.Order) {
	err := s.orderRepo.Create(order)
	switch {
	case err == nil:
		s.logger.Info("✅ [PaymentService] Order recorded", "session_id", order.StripeSessionID, "order_id", order.ID)
	case errors.Is(err, repository.ErrOrderExists):
		// Stripe retried the webhook; the first delivery already won.
		s.logger.Debug("📨 [PaymentService] Order already recorded", "session_id", order.StripeSessionID)
	default:
		s.logger.Error("❌ [PaymentService] Failed to record order", "session_id", order.StripeSessionID, "error", err)
	}
}

func parseSessionMetadata(metadata map[string]string) (carID, userID uint, err error) {
	car, err := strconv.ParseUint(metadata["carId"], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("session metadata missing carId: %w", err)
	}
	user, err := strconv.ParseUint(metadata["userId"], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("session metadata missing userId: %w", err)
	}
	return uint(car), uint(user), nil
}

// Service errors
var (
	ErrAmountAboveLimit = errors.New("price above payment provider maximum")
	ErrAmountBelowLimit = errors.New("price below payment provider minimum")
	ErrWebhookSignature = errors.New("webhook signature verification failed")
)
