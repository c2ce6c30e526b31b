package payment

import (
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"stayhub/config"
	"stayhub/errs"
)

// CheckoutSession is the slice of a hosted checkout session the payment
// flow cares about.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	ExpiresAt     int64
}

// CheckoutGateway abstracts the hosted-checkout provider.
type CheckoutGateway interface {
	CreateSession(bookingID string, amount float64) (*CheckoutSession, error)
	GetSession(sessionID string) (*CheckoutSession, error)
}

// StripeCheckoutGateway creates and inspects Stripe Checkout sessions.
type StripeCheckoutGateway struct{}

func NewStripeCheckoutGateway() *StripeCheckoutGateway {
	return &StripeCheckoutGateway{}
}

func (g *StripeCheckoutGateway) CreateSession(bookingID string, amount float64) (*CheckoutSession, error) {
	baseURL := config.AppConfig.AppBaseURL
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(baseURL + "/payments/success?sessionId={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(baseURL + "/payments/cancel?sessionId={CHECKOUT_SESSION_ID}"),
		ExpiresAt:  stripe.Int64(time.Now().Add(24 * time.Hour).Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Booking payment for " + bookingID),
					},
					UnitAmount: stripe.Int64(amountToCents(amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, errs.NewSession("failed to create checkout session", err)
	}
	return toCheckoutSession(sess), nil
}

func (g *StripeCheckoutGateway) GetSession(sessionID string) (*CheckoutSession, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, errs.NewSession("failed to retrieve checkout session "+sessionID, err)
	}
	return toCheckoutSession(sess), nil
}

// amountToCents converts a dollar amount to cents. Rounding matters:
// truncation would undercharge by a cent whenever the product of rate
// and nights is not exactly representable (110.35 * 3 = 331.04999...).
func amountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func toCheckoutSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		ExpiresAt:     sess.ExpiresAt,
	}
}
