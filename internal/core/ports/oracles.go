package ports

import "context"

// TokenVerifier validates the opaque bearer credential from a request's
// Authorization header and yields the verified email claim. Every request is
// re-verified; implementations must not cache failures.
type TokenVerifier interface {
	// Verify takes the full header value ("<scheme> <token>"), strips the
	// scheme, and validates the token. Returns domain.ErrUnauthorized on a
	// missing or malformed header or a rejected token.
	Verify(ctx context.Context, authorizationHeader string) (email string, err error)
}

// CheckoutSession is the oracle's view of an external checkout session.
type CheckoutSession struct {
	ID              string
	PaymentIntentID string
	PaymentStatus   string // "paid", "unpaid", "no_payment_required"
	AmountTotal     int64  // minor units (cents)
	Currency        string
	CustomerEmail   string
	Metadata        map[string]string
}

// CreateSessionInput carries the data needed to open a checkout session.
type CreateSessionInput struct {
	ParcelID    string
	ParcelName  string
	Cost        float64 // major units
	SenderEmail string
}

// CheckoutProvider is the external payment oracle. Given a session id it
// reports payment status, amount, currency, and metadata; the caller treats
// it as a black box with a bounded timeout.
type CheckoutProvider interface {
	// CreateSession opens a checkout session and returns the redirect URL.
	CreateSession(ctx context.Context, in CreateSessionInput) (url string, err error)
	// Session retrieves a session by id. Returns domain.ErrSessionNotFound
	// when the reference cannot be resolved and domain.ErrUpstreamUnavailable
	// on timeout or provider failure.
	Session(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
