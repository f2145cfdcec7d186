package domain

import "time"

// Role represents an account's role in the marketplace.
type Role string

const (
	RoleVendor   Role = "VENDOR"
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleGuest    Role = "GUEST"
)

// PreorderStatus represents the lifecycle of a preorder.
type PreorderStatus string

const (
	PreorderPending   PreorderStatus = "PENDING"
	PreorderConfirmed PreorderStatus = "CONFIRMED"
	PreorderCancelled PreorderStatus = "CANCELLED"
)

// Terminal reports whether the status can no longer change.
func (s PreorderStatus) Terminal() bool {
	return s == PreorderConfirmed || s == PreorderCancelled
}

// PaymentStatus represents the lifecycle of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentKind distinguishes what a payment secures.
type PaymentKind string

const (
	PaymentKindShed     PaymentKind = "SHED"
	PaymentKindPreorder PaymentKind = "PREORDER"
)

// User represents an account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// VendorProfile extends a vendor user with business attributes.
type VendorProfile struct {
	UserID       int64
	BusinessName string
	Description  string
	CreatedAt    time.Time
}

// Shed is an allocatable stall assigned to one vendor within one domain.
// The domain never changes after allocation; moving domains is modelled
// as release followed by a fresh allocation so the admission check runs.
type Shed struct {
	ID         int64
	DomainCode string
	Number     int
	Name       string
	VendorID   int64
	Secured    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Product represents an item listed for sale in a shed.
type Product struct {
	ID          int64
	ShedID      int64
	VendorID    int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Preorder is a customer's reservation of product units.
type Preorder struct {
	ID         int64
	CustomerID int64
	VendorID   int64
	ProductID  int64
	Quantity   int
	Status     PreorderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Follow records a customer following a vendor.
type Follow struct {
	ID         int64
	CustomerID int64
	VendorID   int64
	CreatedAt  time.Time
}

// Payment is a gateway transaction attached to a shed or a preorder.
type Payment struct {
	ID         int64
	Kind       PaymentKind
	ShedID     *int64
	PreorderID *int64
	Amount     float64
	Reference  string
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
