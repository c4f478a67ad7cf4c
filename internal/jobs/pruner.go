package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/boardkit/boardkit/internal/logger"
)

type ActivityStorage interface {
	PruneActivity(ctx context.Context, olderThan time.Time) (int64, error)
}

// Pruner removes activity rows older than the retention window on a
// cron schedule, keeping the recently-active queries cheap.
type Pruner struct {
	cron      *cron.Cron
	storage   ActivityStorage
	retention time.Duration
}

func NewPruner(storage ActivityStorage, retention time.Duration) *Pruner {
	return &Pruner{
		cron:      cron.New(),
		storage:   storage,
		retention: retention,
	}
}

func (p *Pruner) Start(schedule string) error {
	_, err := p.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().Add(-p.retention)
		pruned, err := p.storage.PruneActivity(ctx, cutoff)
		if err != nil {
			logger.Log.Error("activity pruning failed", "error", err)
			return
		}
		if pruned > 0 {
			logger.Log.Info("pruned stale activity rows", "count", pruned)
		}
	})
	if err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}
