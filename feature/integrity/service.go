package integrity

import (
	"context"

	"meeting-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// CheckOverlaps returns double-booked reservation pairs.
func (s *Service) CheckOverlaps(ctx context.Context) ([]checks.OverlapIssue, error) {
	return checks.CheckOverlaps(ctx, s.db)
}

// CheckTimeRanges returns reservations with unparseable or inverted windows.
func (s *Service) CheckTimeRanges(ctx context.Context) ([]checks.RangeIssue, error) {
	return checks.CheckTimeRanges(ctx, s.db)
}

// CheckOrphans returns reservations pointing at missing rooms.
func (s *Service) CheckOrphans(ctx context.Context) ([]checks.OrphanIssue, error) {
	return checks.CheckOrphans(ctx, s.db)
}
