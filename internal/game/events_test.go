package game

import (
	"math/rand"
	"testing"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

func eventAt(now time.Time, mining, art float64) *domain.GameEvent {
	return &domain.GameEvent{
		MiningMultiplier:    mining,
		ArtMultiplier:       art,
		BuildingMultiplier:  1.0,
		MarketFeeMultiplier: 1.0,
		StartTime:           now.Add(-time.Hour),
		EndTime:             now.Add(time.Hour),
		IsActive:            true,
	}
}

func TestEventMultiplier(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no events", func(t *testing.T) {
		if got := EventMultiplier(nil, domain.ActivityMining, now); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("composite product", func(t *testing.T) {
		events := []*domain.GameEvent{
			eventAt(now, 2.0, 1.0),
			eventAt(now, 1.5, 1.0),
		}
		if got := EventMultiplier(events, domain.ActivityMining, now); got != 3.0 {
			t.Errorf("got %v, want 3.0", got)
		}
		// The other activity is untouched.
		if got := EventMultiplier(events, domain.ActivityArt, now); got != 1.0 {
			t.Errorf("art multiplier = %v, want 1.0", got)
		}
	})

	t.Run("expired window ignored", func(t *testing.T) {
		ev := eventAt(now, 2.0, 1.0)
		ev.EndTime = now.Add(-time.Minute)
		if got := EventMultiplier([]*domain.GameEvent{ev}, domain.ActivityMining, now); got != 1.0 {
			t.Errorf("got %v, want 1.0 for expired event", got)
		}
	})

	t.Run("inactive flag ignored", func(t *testing.T) {
		ev := eventAt(now, 2.0, 1.0)
		ev.IsActive = false
		if got := EventMultiplier([]*domain.GameEvent{ev}, domain.ActivityMining, now); got != 1.0 {
			t.Errorf("got %v, want 1.0 for deactivated event", got)
		}
	})

	t.Run("end boundary exclusive", func(t *testing.T) {
		ev := eventAt(now, 2.0, 1.0)
		ev.EndTime = now
		if got := EventMultiplier([]*domain.GameEvent{ev}, domain.ActivityMining, now); got != 1.0 {
			t.Errorf("got %v, want 1.0 at the end instant", got)
		}
	})
}

func TestRollNewEventRespectsCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Now().UTC()

	for i := 0; i < 1000; i++ {
		if ev := RollNewEvent(rng, config.MaxActiveEvents, now); ev != nil {
			t.Fatal("spawned an event past the concurrency cap")
		}
	}
}

func TestRollNewEventShape(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	var spawned int
	for i := 0; i < 10000 && spawned < 20; i++ {
		ev := RollNewEvent(rng, 0, now)
		if ev == nil {
			continue
		}
		spawned++

		if !ev.IsActive {
			t.Error("new event must be active")
		}
		if !ev.StartTime.Equal(now) {
			t.Errorf("start = %v, want %v", ev.StartTime, now)
		}
		dur := ev.EndTime.Sub(ev.StartTime)
		if dur < config.EventMinDuration || dur > config.EventMaxDuration {
			t.Errorf("duration %v outside [%v, %v]", dur, config.EventMinDuration, config.EventMaxDuration)
		}
		if ev.Name == "" || ev.EventType == "" {
			t.Errorf("event missing identity: %+v", ev)
		}
		for _, m := range []float64{ev.MiningMultiplier, ev.ArtMultiplier, ev.BuildingMultiplier, ev.MarketFeeMultiplier} {
			if m <= 0 {
				t.Errorf("non-positive multiplier in %+v", ev)
			}
		}
	}
	if spawned == 0 {
		t.Fatal("no events spawned in 10000 rolls; chance wiring broken")
	}
}
