package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/pkg/apperrors"
)

const topListSize = 10

// Service assembles the admin analytics overview.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Overview returns the dashboard aggregates. Admin only.
func (s *Service) Overview(ctx context.Context, caller auth.Identity) (*Overview, error) {
	if !caller.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading totals: %w", err)
	}
	byMonth, err := s.repo.SubmissionsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading monthly submissions: %w", err)
	}
	topTags, err := s.repo.TopTags(ctx, topListSize)
	if err != nil {
		return nil, fmt.Errorf("loading top tags: %w", err)
	}
	topTech, err := s.repo.TopTech(ctx, topListSize)
	if err != nil {
		return nil, fmt.Errorf("loading top tech: %w", err)
	}

	return &Overview{
		Totals:  *totals,
		ByMonth: byMonth,
		TopTags: topTags,
		TopTech: topTech,
	}, nil
}
