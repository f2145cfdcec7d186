package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"tradefair/src/core/ports"
)

// DomainCapacity is one entry of the public availability snapshot.
type DomainCapacity struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// CapacityService is the read-side projection over the allocation ledger.
// It never mutates ledger state; the non-negative availability invariant
// is enforced by the ledger's admission check, not here.
type CapacityService struct {
	repo  ports.MarketRepository
	cache ports.SnapshotCache
	log   *slog.Logger
}

func NewCapacityService(repo ports.MarketRepository, cache ports.SnapshotCache, log *slog.Logger) *CapacityService {
	return &CapacityService{repo: repo, cache: cache, log: log}
}

// Snapshot returns per-domain {total, used, available} keyed by the
// domain display name. The counts come from a single aggregate query so
// concurrent allocations never produce a torn snapshot.
func (s *CapacityService) Snapshot(ctx context.Context) (map[string]DomainCapacity, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	usages, err := s.repo.DomainUsage(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]DomainCapacity, len(usages))
	for _, u := range usages {
		out[u.Name] = DomainCapacity{Total: u.Total, Used: u.Used, Available: u.Available}
	}
	s.toCache(ctx, out)
	return out, nil
}

func (s *CapacityService) fromCache(ctx context.Context) map[string]DomainCapacity {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("snapshot cache read failed", "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}
	var out map[string]DomainCapacity
	if err := json.Unmarshal(payload, &out); err != nil {
		s.log.Warn("snapshot cache payload corrupt", "error", err)
		return nil
	}
	return out
}

func (s *CapacityService) toCache(ctx context.Context, snapshot map[string]DomainCapacity) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, payload); err != nil {
		s.log.Warn("snapshot cache write failed", "error", err)
	}
}
