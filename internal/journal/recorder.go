package journal

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
)

// Recorder appends entries on a best-effort basis. A failed append is
// logged and otherwise ignored: the ledger state is the source of truth and
// the journal must never make a committed operation look failed.
type Recorder struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewRecorder(repo Repository, clk clock.Clock, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// Record stamps the entry with an id and time and appends it.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.clock.Now()
	}

	if err := r.repo.Append(ctx, &e); err != nil {
		r.logger.Error("failed to append journal entry",
			zap.Error(err),
			zap.String("kind", string(e.Kind)),
			zap.Int64("holder_id", e.HolderID),
			zap.Int64("resource_id", e.ResourceID))
		return
	}

	r.logger.Debug("journal entry recorded",
		zap.String("id", e.ID),
		zap.String("kind", string(e.Kind)),
		zap.Int64("holder_id", e.HolderID),
		zap.String("amount", e.Amount.String()))
}

// List exposes the underlying store for read endpoints.
func (r *Recorder) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return r.repo.List(ctx, filter)
}
