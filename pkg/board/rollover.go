package board

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

// Scheduler drives the daily rollover and the hourly tier recompute. It arms
// a one-shot timer for the next local midnight, re-arms it when it fires, and
// runs an hourly ticker in between. Both are cancelled by Stop.
type Scheduler struct {
	board    *Board
	clock    duedate.Clock
	onChange func()

	mu      sync.Mutex
	timer   *time.Timer
	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
}

// NewScheduler returns a stopped scheduler. onChange is called after each
// timer-driven collection update so the view can redraw; it may be nil.
func NewScheduler(board *Board, clock duedate.Clock, onChange func()) *Scheduler {
	return &Scheduler{
		board:    board,
		clock:    clock,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// NextMidnight returns the next local midnight strictly after now.
func NextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()

	return time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}

// Start runs a rollover immediately (the once-per-day stamp makes the prune
// safe to attempt on every app start) and arms the timers.
func (s *Scheduler) Start(ctx context.Context) {
	s.board.Rollover(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.armLocked(ctx)

	s.ticker = time.NewTicker(time.Hour)

	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				s.board.RecomputeTiers(ctx)
				s.notify()
			}
		}
	}()
}

func (s *Scheduler) armLocked(ctx context.Context) {
	now := s.clock.Now()
	next := NextMidnight(now)

	log.Debug().Time("next", next).Msg("arming rollover timer")

	s.timer = time.AfterFunc(next.Sub(now), func() {
		s.board.Rollover(ctx)
		s.notify()

		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.stopped {
			s.armLocked(ctx)
		}
	})
}

func (s *Scheduler) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Stop cancels the timers. Safe to call once, before or after Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.stopped = true

	if s.timer != nil {
		s.timer.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.done)
}
