// Package refresh revalidates the persisted session on a schedule, so
// an expired token is noticed and erased without waiting for a user
// interaction to fail.
package refresh

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/revbook/revbook-client/internal/config"
	"github.com/revbook/revbook-client/internal/session"
)

// Scheduler drives periodic session revalidation.
type Scheduler struct {
	sessions *session.Store
	cfg      config.Refresh
	log      zerolog.Logger

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewScheduler creates a scheduler instance.
func NewScheduler(sessions *session.Store, cfg config.Refresh, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		sessions: sessions,
		cfg:      cfg,
		log:      log.With().Str("component", "session_refresh").Logger(),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if refresh is enabled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		s.log.Debug().Msg("session refresh disabled")
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.sessions.LoadSession(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		s.cancelFunc = nil
		return fmt.Errorf("invalid refresh schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	s.log.Info().Str("schedule", s.cfg.Schedule).Msg("session refresh started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running
// revalidation to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false
	s.log.Info().Msg("session refresh stopped")
}
