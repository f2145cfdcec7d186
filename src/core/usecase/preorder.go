package usecase

import (
	"context"
	"log/slog"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// PreorderService handles the pending -> confirmed | cancelled workflow.
type PreorderService struct {
	repo ports.MarketRepository
	log  *slog.Logger
}

func NewPreorderService(repo ports.MarketRepository, log *slog.Logger) *PreorderService {
	return &PreorderService{repo: repo, log: log}
}

// Create places a preorder for the acting customer. Quantity is checked
// against the product's current stock; stock itself is only decremented
// when the vendor confirms.
func (s *PreorderService) Create(ctx context.Context, actor domain.Actor, productID int64, quantity int) (*domain.Preorder, error) {
	if !domain.CanCreatePreorder(actor) {
		return nil, domain.NewForbiddenError("only customers can place preorders")
	}
	if quantity < domain.MinPreorderQuantity {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, domain.NewValidationError("quantity", "exceeds available stock")
	}
	po, err := s.repo.CreatePreorder(ctx, &domain.Preorder{
		CustomerID: actor.UserID,
		VendorID:   product.VendorID,
		ProductID:  product.ID,
		Quantity:   quantity,
		Status:     domain.PreorderPending,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("preorder placed", "preorder_id", po.ID, "product_id", productID, "quantity", quantity)
	return po, nil
}

// Get returns a preorder visible to the actor.
func (s *PreorderService) Get(ctx context.Context, actor domain.Actor, preorderID int64) (*domain.Preorder, error) {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewPreorder(actor, po) {
		return nil, domain.NewForbiddenError("not a party to this preorder")
	}
	return po, nil
}

// List returns the actor's preorders: customers see their own, vendors
// see preorders on their products.
func (s *PreorderService) List(ctx context.Context, actor domain.Actor) ([]domain.Preorder, error) {
	switch {
	case actor.IsCustomer():
		return s.repo.ListPreordersByCustomer(ctx, actor.UserID)
	case actor.IsVendor():
		return s.repo.ListPreordersByVendor(ctx, actor.UserID)
	case actor.IsAdmin():
		return s.repo.ListPreordersByVendor(ctx, actor.UserID)
	default:
		return nil, domain.NewForbiddenError("authentication required")
	}
}

// UpdateQuantity changes a pending preorder's quantity (owning customer only).
func (s *PreorderService) UpdateQuantity(ctx context.Context, actor domain.Actor, preorderID int64, quantity int) (*domain.Preorder, error) {
	if quantity < domain.MinPreorderQuantity {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditPreorder(actor, po) {
		return nil, domain.NewForbiddenError("not the preorder owner")
	}
	if po.Status.Terminal() {
		return nil, domain.NewConflictError("preorder already " + string(po.Status))
	}
	product, err := s.repo.GetProduct(ctx, po.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, domain.NewValidationError("quantity", "exceeds available stock")
	}
	return s.repo.UpdatePreorderQuantity(ctx, preorderID, quantity)
}

// Confirm lets the product's vendor accept a pending preorder. The stock
// decrement happens atomically with the status change.
func (s *PreorderService) Confirm(ctx context.Context, actor domain.Actor, preorderID int64) (*domain.Preorder, error) {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanConfirmPreorder(actor, po) {
		return nil, domain.NewForbiddenError("only the vendor can confirm")
	}
	if po.Status.Terminal() {
		return nil, domain.NewConflictError("preorder already " + string(po.Status))
	}
	confirmed, err := s.repo.ConfirmPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	s.log.Info("preorder confirmed", "preorder_id", preorderID, "vendor_id", po.VendorID)
	return confirmed, nil
}

// Cancel lets the vendor or the owning customer cancel a pending preorder.
func (s *PreorderService) Cancel(ctx context.Context, actor domain.Actor, preorderID int64) (*domain.Preorder, error) {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanCancelPreorder(actor, po) {
		return nil, domain.NewForbiddenError("not a party to this preorder")
	}
	if po.Status.Terminal() {
		return nil, domain.NewConflictError("preorder already " + string(po.Status))
	}
	cancelled, err := s.repo.CancelPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	s.log.Info("preorder cancelled", "preorder_id", preorderID)
	return cancelled, nil
}

// Delete removes a pending preorder (owning customer only).
func (s *PreorderService) Delete(ctx context.Context, actor domain.Actor, preorderID int64) error {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return err
	}
	if !domain.CanEditPreorder(actor, po) {
		return domain.NewForbiddenError("not the preorder owner")
	}
	if po.Status == domain.PreorderConfirmed {
		return domain.NewConflictError("confirmed preorders cannot be deleted")
	}
	return s.repo.DeletePreorder(ctx, preorderID)
}
