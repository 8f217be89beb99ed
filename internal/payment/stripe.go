package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CheckoutSession is the subset of a Stripe checkout session this service
// reads back: the hosted page URL on create, the metadata and amount on
// retrieval.
type CheckoutSession struct {
	ID            string
	URL           string
	Metadata      map[string]string
	AmountTotal   int64
	PaymentIntent string
}

// LineItem describes the single car being sold.
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	AmountSen   int64 // unit amount in sen (IDR minor unit)
}

// CheckoutClient abstracts the Stripe calls the payment service makes.
type CheckoutClient interface {
	CreateSession(item LineItem, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error)
	GetSession(sessionID string) (*CheckoutSession, error)
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type stripeClient struct {
	webhookSecret string
}

// NewStripeClient configures the global Stripe key and returns a
// CheckoutClient bound to the webhook signing secret.
func NewStripeClient(secretKey, webhookSecret string) CheckoutClient {
	stripe.Key = secretKey
	return &stripeClient{webhookSecret: webhookSecret}
}

func (c *stripeClient) CreateSession(item LineItem, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name:        stripe.String(item.Name),
		Description: stripe.String(item.Description),
	}
	if item.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{item.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyIDR)),
					UnitAmount:  stripe.Int64(item.AmountSen),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}

	return fromStripeSession(s), nil
}

func (c *stripeClient) GetSession(sessionID string) (*CheckoutSession, error) {
	s, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe get session: %w", err)
	}
	return fromStripeSession(s), nil
}

func (c *stripeClient) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		Metadata:    s.Metadata,
		AmountTotal: s.AmountTotal,
	}
	if s.PaymentIntent != nil {
		cs.PaymentIntent = s.PaymentIntent.ID
	}
	return cs
}
