package usecase

import (
	"context"
	"log/slog"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// FollowService handles customer-to-vendor follow relationships.
type FollowService struct {
	repo ports.MarketRepository
	log  *slog.Logger
}

func NewFollowService(repo ports.MarketRepository, log *slog.Logger) *FollowService {
	return &FollowService{repo: repo, log: log}
}

// Follow makes the acting customer follow a vendor.
func (s *FollowService) Follow(ctx context.Context, actor domain.Actor, vendorID int64) (*domain.Follow, error) {
	if !domain.CanFollow(actor) {
		return nil, domain.NewForbiddenError("only customers can follow vendors")
	}
	vendor, err := s.repo.GetUserByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != domain.RoleVendor {
		return nil, domain.NewValidationError("vendor_id", "user is not a vendor")
	}
	return s.repo.CreateFollow(ctx, actor.UserID, vendorID)
}

// Unfollow removes the follow relationship.
func (s *FollowService) Unfollow(ctx context.Context, actor domain.Actor, vendorID int64) error {
	if !domain.CanFollow(actor) {
		return domain.NewForbiddenError("only customers can unfollow vendors")
	}
	return s.repo.DeleteFollow(ctx, actor.UserID, vendorID)
}

// List returns the vendors the acting customer follows.
func (s *FollowService) List(ctx context.Context, actor domain.Actor) ([]domain.Follow, error) {
	if !domain.CanFollow(actor) {
		return nil, domain.NewForbiddenError("only customers have follow lists")
	}
	return s.repo.ListFollows(ctx, actor.UserID)
}
