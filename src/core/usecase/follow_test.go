package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports/mocks"
)

func TestFollowLifecycle(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewFollowService(repo, testLogger())
	ctx := context.Background()

	vendor, _, err := repo.CreateVendor(ctx, "shop", "", "hash", "Ada's Wares", "")
	require.NoError(t, err)
	customer, err := repo.CreateUser(ctx, "ada", "", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	actor := domain.Actor{UserID: customer.ID, Role: domain.RoleCustomer}

	follow, err := svc.Follow(ctx, actor, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, follow.VendorID)

	_, err = svc.Follow(ctx, actor, vendor.ID)
	assert.True(t, domain.IsConflict(err), "double follow must conflict")

	follows, err := svc.List(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, follows, 1)

	require.NoError(t, svc.Unfollow(ctx, actor, vendor.ID))
	follows, err = svc.List(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, follows)
}

func TestFollowTargetMustBeVendor(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewFollowService(repo, testLogger())
	ctx := context.Background()

	other, err := repo.CreateUser(ctx, "bob", "", "hash", domain.RoleCustomer)
	require.NoError(t, err)
	customer, err := repo.CreateUser(ctx, "ada", "", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	actor := domain.Actor{UserID: customer.ID, Role: domain.RoleCustomer}
	_, err = svc.Follow(ctx, actor, other.ID)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.Follow(ctx, actor, 9999)
	assert.True(t, domain.IsNotFound(err))
}

func TestFollowRequiresCustomer(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewFollowService(repo, testLogger())
	ctx := context.Background()

	vendor, _, err := repo.CreateVendor(ctx, "shop", "", "hash", "Ada's Wares", "")
	require.NoError(t, err)

	_, err = svc.Follow(ctx, vendorActor(vendor.ID), vendor.ID)
	assert.True(t, domain.IsForbidden(err))
	_, err = svc.Follow(ctx, domain.Guest(), vendor.ID)
	assert.True(t, domain.IsForbidden(err))
}
