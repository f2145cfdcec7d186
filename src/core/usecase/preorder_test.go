package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports/mocks"
)

func customerActor(id int64) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleCustomer}
}

// seedProduct creates a vendor shed with one product and returns the product.
func seedProduct(t *testing.T, repo *mocks.MockMarketRepository, vendorID int64, stock int) *domain.Product {
	t.Helper()
	ctx := context.Background()
	registry, err := domain.NewRegistry(10)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureDomains(ctx, registry.List()))

	shed, err := repo.AllocateShed(ctx, "EC", vendorID, "Shed")
	require.NoError(t, err)
	product, err := repo.CreateProduct(ctx, &domain.Product{
		ShedID:   shed.ID,
		VendorID: vendorID,
		Name:     "Widget",
		Price:    250.0,
		Quantity: stock,
	})
	require.NoError(t, err)
	return product
}

func TestPreorderCreateValidatesStock(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 5)
	ctx := context.Background()

	_, err := svc.Create(ctx, customerActor(2), product.ID, 6)
	assert.True(t, domain.IsValidationError(err), "quantity above stock must be rejected")

	_, err = svc.Create(ctx, customerActor(2), product.ID, 0)
	assert.True(t, domain.IsValidationError(err))

	po, err := svc.Create(ctx, customerActor(2), product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.PreorderPending, po.Status)
	assert.Equal(t, product.VendorID, po.VendorID)
}

func TestPreorderCreateRequiresCustomer(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 5)
	ctx := context.Background()

	_, err := svc.Create(ctx, vendorActor(1), product.ID, 1)
	assert.True(t, domain.IsForbidden(err))
	_, err = svc.Create(ctx, domain.Guest(), product.ID, 1)
	assert.True(t, domain.IsForbidden(err))
}

func TestConfirmDecrementsStockOnce(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 10)
	ctx := context.Background()

	po, err := svc.Create(ctx, customerActor(2), product.ID, 4)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, vendorActor(1), po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PreorderConfirmed, confirmed.Status)

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity, "stock decrements exactly once on confirm")

	_, err = svc.Confirm(ctx, vendorActor(1), po.ID)
	assert.True(t, domain.IsConflict(err), "re-confirming a terminal preorder must fail")
	got, _ = repo.GetProduct(ctx, product.ID)
	assert.Equal(t, 6, got.Quantity)
}

func TestConfirmOnlyByVendor(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 10)
	ctx := context.Background()

	po, err := svc.Create(ctx, customerActor(2), product.ID, 1)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, customerActor(2), po.ID)
	assert.True(t, domain.IsForbidden(err))
	_, err = svc.Confirm(ctx, vendorActor(99), po.ID)
	assert.True(t, domain.IsForbidden(err))
}

func TestCancelIsTerminal(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 10)
	ctx := context.Background()

	po, err := svc.Create(ctx, customerActor(2), product.ID, 2)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, customerActor(2), po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PreorderCancelled, cancelled.Status)

	_, err = svc.Confirm(ctx, vendorActor(1), po.ID)
	assert.True(t, domain.IsConflict(err), "a cancelled preorder cannot be confirmed")

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "cancelling must not touch stock")
}

func TestUpdateQuantityBoundedByStock(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 3)
	ctx := context.Background()

	po, err := svc.Create(ctx, customerActor(2), product.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, customerActor(2), po.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	_, err = svc.UpdateQuantity(ctx, customerActor(2), po.ID, 4)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.UpdateQuantity(ctx, vendorActor(1), po.ID, 2)
	assert.True(t, domain.IsForbidden(err), "vendors cannot edit the customer's quantity")
}

func TestDeleteRejectsConfirmed(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 10)
	ctx := context.Background()

	po, err := svc.Create(ctx, customerActor(2), product.ID, 1)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, vendorActor(1), po.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, customerActor(2), po.ID)
	assert.True(t, domain.IsConflict(err))
}

func TestListScopedByRole(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPreorderService(repo, testLogger())
	product := seedProduct(t, repo, 1, 10)
	ctx := context.Background()

	_, err := svc.Create(ctx, customerActor(2), product.ID, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, customerActor(3), product.ID, 2)
	require.NoError(t, err)

	mine, err := svc.List(ctx, customerActor(2))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	vendors, err := svc.List(ctx, vendorActor(1))
	require.NoError(t, err)
	assert.Len(t, vendors, 2)

	_, err = svc.List(ctx, domain.Guest())
	assert.True(t, domain.IsForbidden(err))
}
