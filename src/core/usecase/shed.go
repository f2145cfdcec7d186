package usecase

import (
	"context"
	"log/slog"
	"strings"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// ShedService is the allocation ledger facade: it authorizes callers,
// validates input against the domain registry and delegates the atomic
// check-and-insert to the repository.
type ShedService struct {
	repo     ports.MarketRepository
	registry *domain.Registry
	cache    ports.SnapshotCache
	log      *slog.Logger
}

func NewShedService(repo ports.MarketRepository, registry *domain.Registry, cache ports.SnapshotCache, log *slog.Logger) *ShedService {
	return &ShedService{repo: repo, registry: registry, cache: cache, log: log}
}

// Allocate creates a shed for a vendor inside a domain. Fails with
// ErrUnknownDomain for unconfigured codes, ErrForbidden for non-vendor
// actors and ErrDomainFull when no slot is left. The capacity check and
// the insert are one atomic unit in the repository.
func (s *ShedService) Allocate(ctx context.Context, actor domain.Actor, domainCode, name string) (*domain.Shed, error) {
	if !domain.CanCreateShed(actor) {
		return nil, domain.NewForbiddenError("only vendors can allocate sheds")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}
	if _, err := s.registry.Get(domainCode); err != nil {
		return nil, err
	}

	shed, err := s.repo.AllocateShed(ctx, domainCode, actor.UserID, name)
	if err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)
	s.log.Info("shed allocated",
		"shed_id", shed.ID,
		"domain", shed.DomainCode,
		"shed_number", shed.Number,
		"vendor_id", shed.VendorID,
	)
	return shed, nil
}

// Update renames a shed. The domain is immutable; moving a shed between
// domains is release followed by allocate so the admission check runs.
func (s *ShedService) Update(ctx context.Context, actor domain.Actor, shedID int64, name string) (*domain.Shed, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}
	shed, err := s.repo.GetShed(ctx, shedID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyShed(actor, shed) {
		return nil, domain.NewForbiddenError("not the shed owner")
	}
	return s.repo.UpdateShedName(ctx, shedID, name)
}

// Release removes a shed, freeing its slot.
func (s *ShedService) Release(ctx context.Context, actor domain.Actor, shedID int64) error {
	shed, err := s.repo.GetShed(ctx, shedID)
	if err != nil {
		return err
	}
	if !domain.CanModifyShed(actor, shed) {
		return domain.NewForbiddenError("not the shed owner")
	}
	if err := s.repo.ReleaseShed(ctx, shedID); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	s.log.Info("shed released", "shed_id", shedID, "domain", shed.DomainCode)
	return nil
}

// Get returns a shed by id. Public.
func (s *ShedService) Get(ctx context.Context, shedID int64) (*domain.Shed, error) {
	return s.repo.GetShed(ctx, shedID)
}

// List returns sheds, optionally filtered by domain code. Public.
func (s *ShedService) List(ctx context.Context, domainCode *string) ([]domain.Shed, error) {
	if domainCode != nil {
		if _, err := s.registry.Get(*domainCode); err != nil {
			return nil, err
		}
	}
	return s.repo.ListSheds(ctx, domainCode)
}

// ListMine returns the sheds owned by the acting vendor.
func (s *ShedService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Shed, error) {
	if !actor.Authenticated() || !actor.IsVendor() {
		return nil, domain.NewForbiddenError("only vendors own sheds")
	}
	return s.repo.ListShedsByVendor(ctx, actor.UserID)
}

// Domains returns the configured registry entries. Public.
func (s *ShedService) Domains() []domain.Domain {
	return s.registry.List()
}

func (s *ShedService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("snapshot cache invalidation failed", "error", err)
	}
}
