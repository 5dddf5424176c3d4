package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// Warmer reloads a cache from its backing store.
type Warmer interface {
	Warm(ctx context.Context) ([]domain.ProjectRecord, error)
}

// Scheduler runs the cache warm job on a cron spec such as "@every 4m".
type Scheduler struct {
	c       *cron.Cron
	warmer  Warmer
	timeout time.Duration
}

func New(spec string, w Warmer) (*Scheduler, error) {
	s := &Scheduler{
		c:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		warmer:  w,
		timeout: 30 * time.Second,
	}
	if _, err := s.c.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("schedule cache warm %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce warms the cache immediately.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log := logging.Op(ctx, "cache_warm")
	items, err := s.warmer.Warm(ctx)
	if err != nil {
		log.WithError(err).Warn("cache warm failed")
		return
	}
	log.WithField("projects", len(items)).Debug("cache warmed")
}

func (s *Scheduler) Start() {
	s.c.Start()
	logging.Op(context.Background(), "cache_warm").Info("cron scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
