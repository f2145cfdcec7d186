// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"tradefair/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// DomainUsage is the per-domain slot accounting read model.
// Used never exceeds Total as long as allocation goes through
// AllocateShed; Available is clamped at zero in case capacity was
// shrunk below current usage.
type DomainUsage struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Available int    `json:"available"`
}

// ProductFilter narrows public product listings.
type ProductFilter struct {
	ShedID   *int64
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

// MarketRepository is a composite repository covering all marketplace operations.
type MarketRepository interface {
	Repository

	// Users & profiles
	CreateUser(ctx context.Context, username, email, passwordHash string, role domain.Role) (*domain.User, error)
	// CreateVendor creates the user row and its vendor profile atomically.
	CreateVendor(ctx context.Context, username, email, passwordHash, businessName, description string) (*domain.User, *domain.VendorProfile, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetVendorProfile(ctx context.Context, userID int64) (*domain.VendorProfile, error)

	// Domains (seeded from the registry at startup, read-only afterwards)
	EnsureDomains(ctx context.Context, domains []domain.Domain) error
	// DomainUsage returns a consistent per-domain usage snapshot.
	DomainUsage(ctx context.Context) ([]DomainUsage, error)

	// Shed allocation ledger. AllocateShed must evaluate the capacity
	// check and the insert as one atomic unit: two concurrent calls
	// racing for the last slot must not both succeed.
	AllocateShed(ctx context.Context, domainCode string, vendorID int64, name string) (*domain.Shed, error)
	GetShed(ctx context.Context, shedID int64) (*domain.Shed, error)
	UpdateShedName(ctx context.Context, shedID int64, name string) (*domain.Shed, error)
	ReleaseShed(ctx context.Context, shedID int64) error
	SecureShed(ctx context.Context, shedID int64) error
	ListSheds(ctx context.Context, domainCode *string) ([]domain.Shed, error)
	ListShedsByVendor(ctx context.Context, vendorID int64) ([]domain.Shed, error)

	// Products
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// Preorders
	CreatePreorder(ctx context.Context, po *domain.Preorder) (*domain.Preorder, error)
	GetPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error)
	UpdatePreorderQuantity(ctx context.Context, preorderID int64, quantity int) (*domain.Preorder, error)
	// ConfirmPreorder flips a pending preorder to confirmed and decrements
	// the product stock in the same transaction.
	ConfirmPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error)
	CancelPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error)
	DeletePreorder(ctx context.Context, preorderID int64) error
	ListPreordersByCustomer(ctx context.Context, customerID int64) ([]domain.Preorder, error)
	ListPreordersByVendor(ctx context.Context, vendorID int64) ([]domain.Preorder, error)

	// Follows
	CreateFollow(ctx context.Context, customerID, vendorID int64) (*domain.Follow, error)
	DeleteFollow(ctx context.Context, customerID, vendorID int64) error
	ListFollows(ctx context.Context, customerID int64) ([]domain.Follow, error)

	// Payments
	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error)
	GetPaymentForPreorder(ctx context.Context, preorderID int64) (*domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, reference string, status domain.PaymentStatus) (*domain.Payment, error)
	// MarkShedPaymentSuccess records the success and flips the shed to
	// secured in the same transaction.
	MarkShedPaymentSuccess(ctx context.Context, reference string) (*domain.Payment, error)
}
