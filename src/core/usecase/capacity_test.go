package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
)

func TestSnapshotKeyedByDisplayName(t *testing.T) {
	shedSvc, repo := newShedFixture(t, 100)
	capSvc := NewCapacityService(repo, nil, testLogger())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := shedSvc.Allocate(ctx, vendorActor(int64(i+1)), "EC", "Shed")
		require.NoError(t, err)
	}

	snapshot, err := capSvc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 4)

	ec, ok := snapshot["Electronics and Computer wares"]
	require.True(t, ok, "snapshot must be keyed by display name")
	assert.Equal(t, DomainCapacity{Total: 100, Used: 12, Available: 88}, ec)

	for _, name := range []string{"Clothings and Beddings", "Food and Beverages", "Jewelry and Accessories"} {
		entry, ok := snapshot[name]
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, DomainCapacity{Total: 100, Used: 0, Available: 100}, entry)
	}
}

func TestSnapshotTracksAllocationAndRelease(t *testing.T) {
	shedSvc, repo := newShedFixture(t, 100)
	capSvc := NewCapacityService(repo, nil, testLogger())
	ctx := context.Background()

	shed, err := shedSvc.Allocate(ctx, vendorActor(1), "EC", "Shed")
	require.NoError(t, err)

	snapshot, err := capSvc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot["Electronics and Computer wares"].Used)

	require.NoError(t, shedSvc.Release(ctx, vendorActor(1), shed.ID))

	snapshot, err = capSvc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot["Electronics and Computer wares"].Used)
	assert.Equal(t, 100, snapshot["Electronics and Computer wares"].Available)
}

func TestSnapshotClampsAvailabilityWhenCapacityShrinks(t *testing.T) {
	shedSvc, repo := newShedFixture(t, 5)
	capSvc := NewCapacityService(repo, nil, testLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := shedSvc.Allocate(ctx, vendorActor(int64(i+1)), "CB", "Shed")
		require.NoError(t, err)
	}

	// Operator shrinks capacity below current usage; existing sheds stay.
	shrunk, err := domain.NewRegistry(3)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureDomains(ctx, shrunk.List()))

	snapshot, err := capSvc.Snapshot(ctx)
	require.NoError(t, err)
	cb := snapshot["Clothings and Beddings"]
	assert.Equal(t, 3, cb.Total)
	assert.Equal(t, 5, cb.Used)
	assert.Equal(t, 0, cb.Available, "availability must never go negative")
}
