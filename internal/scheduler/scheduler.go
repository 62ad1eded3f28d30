// Package scheduler owns the single process-wide countdown loop. One
// ticking task drives every timed room; per-tick work scales with the
// number of rooms actually counting down.
package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Idle rooms are swept once per minute of ticks.
const sweepEvery = 60

// RoomTicker is the slice of the room manager the scheduler drives.
type RoomTicker interface {
	TickTimers()
	EvictIdle(ttl time.Duration) int
}

type Scheduler struct {
	clock clockwork.Clock
	rooms RoomTicker
	ttl   time.Duration
}

func New(clock clockwork.Clock, rooms RoomTicker, ttl time.Duration) *Scheduler {
	return &Scheduler{clock: clock, rooms: rooms, ttl: ttl}
}

// Run ticks once per second until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	log.Info().Dur("room_ttl", s.ttl).Msg("timer scheduler started")
	ticks := 0
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("timer scheduler stopped")
			return
		case <-ticker.Chan():
			s.rooms.TickTimers()
			ticks++
			if ticks%sweepEvery == 0 {
				if n := s.rooms.EvictIdle(s.ttl); n > 0 {
					log.Info().Int("evicted", n).Msg("idle room sweep")
				}
			}
		}
	}
}
