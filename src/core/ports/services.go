package ports

import (
	"context"
)

// ExternalService is the base interface for external service adapters.
type ExternalService interface {
	// Health checks if the external service is reachable.
	Health(ctx context.Context) error
}

// InitializePaymentRequest carries what the gateway needs to start a charge.
// Amount is in the smallest currency unit (kobo).
type InitializePaymentRequest struct {
	Reference   string
	AmountKobo  int64
	Email       string
	CallbackURL string
}

// InitializePaymentResponse is the gateway's answer to an initialize call.
type InitializePaymentResponse struct {
	AuthorizationURL string
	Reference        string
}

// VerifyPaymentResponse is the gateway's answer to a verify call.
type VerifyPaymentResponse struct {
	Reference  string
	Status     string
	AmountKobo int64
}

// PaymentGateway abstracts the third-party payment provider. The core
// never talks to the provider directly; initiation and verification go
// through this port.
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializePaymentRequest) (*InitializePaymentResponse, error)
	Verify(ctx context.Context, reference string) (*VerifyPaymentResponse, error)
}

// TokenIssuer mints bearer tokens for authenticated users. The core
// issues tokens on signup/login but never validates them; validation is
// a transport concern.
type TokenIssuer interface {
	Generate(userID int64, role string) (string, error)
}

// SnapshotCache is an optional read-side cache for the capacity snapshot.
// Implementations must tolerate concurrent use; a miss is signalled with
// (nil, nil).
type SnapshotCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}
