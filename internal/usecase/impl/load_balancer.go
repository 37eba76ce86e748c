package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"dispatch/config"
	"dispatch/internal/domain/repository"
)

// LoadBalancer nudges raw composite scores using recent-assignment history so
// work spreads across partners instead of piling onto the current favorite.
// Only the top of the ranking is touched; the tail ordering is irrelevant.
type LoadBalancer struct {
	recent repository.RecentAssignmentRepository
	cfg    config.LoadBalancerConfig
	logger *slog.Logger
}

// NewLoadBalancer creates a balancer from configuration, falling back to the
// shipped fairness thresholds for unset values.
func NewLoadBalancer(recent repository.RecentAssignmentRepository, cfg *config.LoadBalancerConfig, logger *slog.Logger) *LoadBalancer {
	resolved := config.DefaultDispatchConfig().LoadBalancer
	if cfg != nil {
		if cfg.WindowMinutes > 0 {
			resolved.WindowMinutes = cfg.WindowMinutes
		}
		if cfg.TopN > 0 {
			resolved.TopN = cfg.TopN
		}
		if cfg.PenaltyThreshold > 0 {
			resolved.PenaltyThreshold = cfg.PenaltyThreshold
		}
		if cfg.PenaltyPerExtra > 0 {
			resolved.PenaltyPerExtra = cfg.PenaltyPerExtra
		}
		if cfg.IdleBonus > 0 {
			resolved.IdleBonus = cfg.IdleBonus
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LoadBalancer{recent: recent, cfg: resolved, logger: logger}
}

// Rebalance adjusts the composite scores of the top-N candidates in place and
// re-sorts that window. A failed history lookup leaves the candidate's score
// untouched rather than failing the dispatch.
func (b *LoadBalancer) Rebalance(ctx context.Context, ranked []*scoredCandidate) {
	if b.recent == nil || len(ranked) == 0 {
		return
	}

	window := time.Duration(b.cfg.WindowMinutes) * time.Minute
	top := b.cfg.TopN
	if top > len(ranked) {
		top = len(ranked)
	}

	for _, candidate := range ranked[:top] {
		count, err := b.recent.CountSince(ctx, candidate.Partner.ID, window)
		if err != nil {
			b.logger.Warn("recent assignment lookup failed, skipping fairness adjustment",
				slog.String("partner_id", candidate.Partner.ID.String()),
				slog.String("error", err.Error()),
			)

			continue
		}

		candidate.RecentAssignments = count
		switch {
		case count > b.cfg.PenaltyThreshold:
			penalty := float64(count-b.cfg.PenaltyThreshold) * b.cfg.PenaltyPerExtra
			candidate.Score.Composite = clampScore(candidate.Score.Composite - penalty)
		case count == 0:
			candidate.Score.Composite = clampScore(candidate.Score.Composite + b.cfg.IdleBonus)
		}
	}

	sort.SliceStable(ranked[:top], func(i, j int) bool {
		return ranked[i].Score.Composite > ranked[j].Score.Composite
	})
}
