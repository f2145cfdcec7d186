package dto

// SignupRequest registers a customer or vendor account.
type SignupRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email"`
	Password     string `json:"password" binding:"required"`
	IsVendor     bool   `json:"is_vendor"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateShedRequest allocates a shed in a domain.
type CreateShedRequest struct {
	Domain string `json:"domain" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// UpdateShedRequest renames a shed.
type UpdateShedRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProductRequest creates or replaces a product listing.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    *string `json:"image_url"`
}

// CreatePreorderRequest places a preorder on a product.
type CreatePreorderRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdatePreorderRequest changes a pending preorder's quantity.
type UpdatePreorderRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// FollowRequest follows a vendor.
type FollowRequest struct {
	VendorID int64 `json:"vendor_id" binding:"required"`
}

// InitiateShedPaymentRequest opens a charge to secure a shed.
type InitiateShedPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Email  string  `json:"email" binding:"required"`
}

// InitiatePreorderPaymentRequest opens a charge for a preorder.
type InitiatePreorderPaymentRequest struct {
	Email string `json:"email" binding:"required"`
}

// WebhookRequest is the gateway callback payload.
type WebhookRequest struct {
	Event string      `json:"event" binding:"required"`
	Data  WebhookData `json:"data" binding:"required"`
}

// WebhookData carries the transaction details of a webhook event.
type WebhookData struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status"`
}
