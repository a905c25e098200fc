package port

import (
	"context"

	"github.com/bnema/audiobatch/internal/domain"
)

// HistoryStore keeps finished batch outcomes.
type HistoryStore interface {
	SaveOutcome(ctx context.Context, o *domain.BatchOutcome) error
	GetOutcome(ctx context.Context, id string) (*domain.BatchOutcome, error)
	ListOutcomes(ctx context.Context, limit int) ([]domain.BatchSummary, error)
	DeleteOutcome(ctx context.Context, id string) error
	Close() error
}
