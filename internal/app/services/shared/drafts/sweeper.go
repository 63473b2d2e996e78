package drafts

import (
	"context"
	"homecare-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultSweeperCronSpec = "@every 5m"

type sweepable interface {
	Sweep() int
}

// Sweeper periodically evicts expired drafts from the in-memory repository.
type Sweeper struct {
	log    *zap.Logger
	repo   sweepable
	spec   string
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewSweeper(log *zap.Logger, repo sweepable, spec string) *Sweeper {
	return &Sweeper{log: log, repo: repo, spec: spec}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.runCtx, s.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(s.spec, s.runOnce)
	if err != nil {
		s.log.Warn("drafts.sweeper: failed to schedule with provided cron spec; falling back to default",
			zap.String("spec", s.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultSweeperCronSpec, s.runOnce)
	}
	c.Start()
	s.cron = c
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *Sweeper) runOnce() {
	if s.runCtx != nil && s.runCtx.Err() != nil {
		return
	}
	swept := s.repo.Sweep()
	if swept > 0 {
		s.log.Info("drafts.sweeper: evicted expired drafts", zap.Int(constvars.LoggingSweptCountKey, swept))
	}
}
