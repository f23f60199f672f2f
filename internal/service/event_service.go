package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventService manages global time-boxed economy modifiers.
type EventService struct {
	events *repository.EventRepository

	mu  sync.Mutex
	rng *rand.Rand

	// notify, when set, announces freshly spawned events (websocket feed).
	notify func(*domain.GameEvent)
}

// SetNotify installs the announcement hook for new events.
func (s *EventService) SetNotify(fn func(*domain.GameEvent)) {
	s.notify = fn
}

func NewEventService(db *pgxpool.Pool) *EventService {
	return &EventService{
		events: repository.NewEventRepository(db),
		rng:    game.NewRand(),
	}
}

// Active returns the events currently inside their window.
func (s *EventService) Active(ctx context.Context) ([]*domain.GameEvent, error) {
	return s.events.GetActive(ctx)
}

// History returns recent events, newest first.
func (s *EventService) History(ctx context.Context, limit int) ([]*domain.GameEvent, error) {
	return s.events.History(ctx, limit)
}

// MaybeSpawn gives chance a shot at starting a new event. Called after each
// successful economy action; most calls spawn nothing. Returns the new event
// or nil.
func (s *EventService) MaybeSpawn(ctx context.Context) (*domain.GameEvent, error) {
	active, err := s.events.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	ev := game.RollNewEvent(s.rng, active, time.Now().UTC())
	s.mu.Unlock()
	if ev == nil {
		return nil, nil
	}

	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}

	logger.Info("game event started",
		"event_id", ev.ID,
		"name", ev.Name,
		"type", ev.EventType,
		"ends_at", ev.EndTime)

	if s.notify != nil {
		s.notify(ev)
	}
	return ev, nil
}

// SweepExpired flips the active flag on events past their window. Expiry is
// already effective at read time; this keeps the table tidy.
func (s *EventService) SweepExpired(ctx context.Context) error {
	n, err := s.events.DeactivateExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("expired game events deactivated", "count", n)
	}
	return nil
}

// EndEvent stops an event ahead of its window, for admin use.
func (s *EventService) EndEvent(ctx context.Context, id int64) error {
	return s.events.Deactivate(ctx, id)
}
