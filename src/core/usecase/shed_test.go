package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newShedFixture(t *testing.T, capacity int) (*ShedService, *mocks.MockMarketRepository) {
	t.Helper()
	registry, err := domain.NewRegistry(capacity)
	require.NoError(t, err)
	repo := mocks.NewMockMarketRepository()
	require.NoError(t, repo.EnsureDomains(context.Background(), registry.List()))
	return NewShedService(repo, registry, nil, testLogger()), repo
}

func vendorActor(id int64) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleVendor}
}

func TestAllocateRequiresVendor(t *testing.T) {
	svc, _ := newShedFixture(t, 10)
	ctx := context.Background()

	for _, actor := range []domain.Actor{
		domain.Guest(),
		{UserID: 1, Role: domain.RoleCustomer},
		{UserID: 2, Role: domain.RoleAdmin},
	} {
		_, err := svc.Allocate(ctx, actor, "EC", "My Shed")
		assert.True(t, domain.IsForbidden(err), "role %s should be forbidden", actor.Role)
	}
}

func TestAllocateUnknownDomain(t *testing.T) {
	svc, repo := newShedFixture(t, 10)
	ctx := context.Background()

	_, err := svc.Allocate(ctx, vendorActor(1), "ZZ", "My Shed")
	require.Error(t, err)
	assert.True(t, domain.IsUnknownDomain(err))
	assert.Empty(t, repo.Sheds, "no shed may be created for an unknown domain")
}

func TestAllocateRejectsEmptyName(t *testing.T) {
	svc, _ := newShedFixture(t, 10)

	_, err := svc.Allocate(context.Background(), vendorActor(1), "EC", "   ")
	assert.True(t, domain.IsValidationError(err))
}

func TestAllocateDomainFullLeavesUsageUnchanged(t *testing.T) {
	svc, repo := newShedFixture(t, 2)
	ctx := context.Background()

	_, err := svc.Allocate(ctx, vendorActor(1), "FB", "Shed A")
	require.NoError(t, err)
	_, err = svc.Allocate(ctx, vendorActor(2), "FB", "Shed B")
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, vendorActor(3), "FB", "Shed C")
	require.Error(t, err)
	assert.True(t, domain.IsDomainFull(err))

	usages, err := repo.DomainUsage(ctx)
	require.NoError(t, err)
	for _, u := range usages {
		if u.Code == "FB" {
			assert.Equal(t, 2, u.Used, "a failed allocation must not consume a slot")
			assert.Equal(t, 0, u.Available)
		}
	}
}

func TestConcurrentAllocationsDoNotOversell(t *testing.T) {
	const slots = 3
	const contenders = 20

	svc, repo := newShedFixture(t, slots)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Allocate(ctx, vendorActor(int64(i+1)), "JA", "Shed")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, domain.IsDomainFull(err), "losers must see domain full, got %v", err)
		}
	}
	assert.Equal(t, slots, succeeded, "exactly the capacity may be allocated")
	assert.Len(t, repo.Sheds, slots)
}

func TestReleaseFreesSlotForReallocation(t *testing.T) {
	svc, _ := newShedFixture(t, 1)
	ctx := context.Background()

	shed, err := svc.Allocate(ctx, vendorActor(1), "CB", "First")
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, vendorActor(2), "CB", "Second")
	assert.True(t, domain.IsDomainFull(err))

	require.NoError(t, svc.Release(ctx, vendorActor(1), shed.ID))

	replacement, err := svc.Allocate(ctx, vendorActor(2), "CB", "Second")
	require.NoError(t, err)
	assert.Equal(t, 1, replacement.Number, "the freed slot number must be reused")
}

func TestReleaseDeniedForNonOwner(t *testing.T) {
	svc, repo := newShedFixture(t, 5)
	ctx := context.Background()

	shed, err := svc.Allocate(ctx, vendorActor(1), "EC", "Mine")
	require.NoError(t, err)

	err = svc.Release(ctx, vendorActor(2), shed.ID)
	assert.True(t, domain.IsForbidden(err))
	err = svc.Release(ctx, domain.Guest(), shed.ID)
	assert.True(t, domain.IsForbidden(err))
	assert.Len(t, repo.Sheds, 1)

	// Admins may release any shed.
	require.NoError(t, svc.Release(ctx, domain.Actor{UserID: 9, Role: domain.RoleAdmin}, shed.ID))
}

func TestUpdateRenamesOnly(t *testing.T) {
	svc, _ := newShedFixture(t, 5)
	ctx := context.Background()

	shed, err := svc.Allocate(ctx, vendorActor(1), "EC", "Old Name")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, vendorActor(1), shed.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, shed.DomainCode, updated.DomainCode)
	assert.Equal(t, shed.Number, updated.Number)

	_, err = svc.Update(ctx, vendorActor(2), shed.ID, "Hijacked")
	assert.True(t, domain.IsForbidden(err))
}

func TestListValidatesDomainFilter(t *testing.T) {
	svc, _ := newShedFixture(t, 5)
	ctx := context.Background()

	_, err := svc.Allocate(ctx, vendorActor(1), "EC", "A")
	require.NoError(t, err)
	_, err = svc.Allocate(ctx, vendorActor(1), "FB", "B")
	require.NoError(t, err)

	code := "EC"
	sheds, err := svc.List(ctx, &code)
	require.NoError(t, err)
	assert.Len(t, sheds, 1)

	bad := "nope"
	_, err = svc.List(ctx, &bad)
	assert.True(t, domain.IsUnknownDomain(err))
}
