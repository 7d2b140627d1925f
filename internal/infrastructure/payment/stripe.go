// Package payment adapts the Stripe checkout API to the CheckoutProvider port.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	currencyUSD    = "usd"

	metadataParcelID   = "parcelId"
	metadataParcelName = "parcelName"
)

// StripeProvider implements ports.CheckoutProvider against the Stripe API
// with a bounded HTTP timeout.
type StripeProvider struct {
	sc         *client.API
	siteDomain string
}

// NewStripeProvider builds a provider with its own API client. siteDomain is
// the public origin the checkout success/cancel redirects land on.
func NewStripeProvider(secret, siteDomain string) *StripeProvider {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	})

	sc := &client.API{}
	sc.Init(secret, &stripe.Backends{API: backend})

	return &StripeProvider{sc: sc, siteDomain: siteDomain}
}

// CreateSession opens a payment-mode checkout session for one parcel and
// returns the hosted checkout URL. The parcel reference travels in session
// metadata so Confirm can find it again.
func (p *StripeProvider) CreateSession(ctx context.Context, in ports.CreateSessionInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.SenderEmail),
		SuccessURL:    stripe.String(p.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.siteDomain + "/dashboard/payment-cancelled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currencyUSD),
					UnitAmount: stripe.Int64(int64(in.Cost * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ParcelName),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataParcelID, in.ParcelID)
	params.AddMetadata(metadataParcelName, in.ParcelName)

	sess, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", mapStripeErr(err)
	}
	return sess.URL, nil
}

// Session retrieves a checkout session by id.
func (p *StripeProvider) Session(ctx context.Context, sessionID string) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}

	out := &ports.CheckoutSession{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	return out, nil
}

// mapStripeErr translates provider failures into the domain taxonomy: an
// unresolvable reference is SessionNotFound; timeouts and 5xx responses are
// UpstreamUnavailable.
func mapStripeErr(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		if se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing {
			return domain.ErrSessionNotFound
		}
		if se.HTTPStatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: stripe %d", domain.ErrUpstreamUnavailable, se.HTTPStatusCode)
		}
		return fmt.Errorf("stripe: %w", err)
	}
	// Network errors and deadline hits surface as transient upstream failures.
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
