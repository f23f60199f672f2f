package game

import (
	"math/rand"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// EventMultiplier returns the composite multiplier for an activity: the
// product of all active events whose multiplier differs from 1.0.
func EventMultiplier(events []*domain.GameEvent, activity domain.Activity, now time.Time) float64 {
	mult := 1.0
	for _, e := range events {
		if !e.ActiveAt(now) {
			continue
		}
		if m := e.MultiplierFor(activity); m != 1.0 {
			mult *= m
		}
	}
	return mult
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// RollNewEvent spawns a new global event with probability config.EventChance,
// respecting the cap on concurrent events. Returns nil when nothing spawns.
func RollNewEvent(rng *rand.Rand, activeCount int, now time.Time) *domain.GameEvent {
	if activeCount >= config.MaxActiveEvents {
		return nil
	}
	if rng.Float64() >= config.EventChance {
		return nil
	}

	duration := config.EventMinDuration +
		time.Duration(rng.Int63n(int64(config.EventMaxDuration-config.EventMinDuration)))

	ev := &domain.GameEvent{
		MiningMultiplier:    1.0,
		ArtMultiplier:       1.0,
		BuildingMultiplier:  1.0,
		MarketFeeMultiplier: 1.0,
		AffectsTokens:       true,
		StartTime:           now,
		EndTime:             now.Add(duration),
		IsActive:            true,
	}

	switch rng.Intn(4) {
	case 0:
		ev.EventType = domain.EventSeasonal
		ev.Name = "Pixel Festival"
		ev.Description = "A seasonal celebration mildly boosts every activity."
		boost := uniform(rng, 1.1, 1.3)
		ev.MiningMultiplier = boost
		ev.ArtMultiplier = boost
		ev.BuildingMultiplier = boost
		ev.AffectsPixels = true
	case 1:
		ev.EventType = domain.EventSpecial
		activities := []domain.Activity{domain.ActivityMining, domain.ActivityArt, domain.ActivityBuilding}
		target := activities[rng.Intn(len(activities))]
		boost := uniform(rng, 1.5, 2.0)
		switch target {
		case domain.ActivityMining:
			ev.Name = "Gold Rush"
			ev.Description = "Mining yields are through the roof."
			ev.MiningMultiplier = boost
			ev.AffectsMaterials = true
		case domain.ActivityArt:
			ev.Name = "Art Exhibition"
			ev.Description = "Collectors pay a premium for pixel art."
			ev.ArtMultiplier = boost
		case domain.ActivityBuilding:
			ev.Name = "Construction Boom"
			ev.Description = "Buildings produce far more than usual."
			ev.BuildingMultiplier = boost
		}
	case 2:
		ev.EventType = domain.EventCrisis
		ev.Name = "Market Crisis"
		ev.Description = "A downturn cuts yields and raises fees."
		penalized := rng.Intn(2) + 1
		activities := []domain.Activity{domain.ActivityMining, domain.ActivityArt, domain.ActivityBuilding}
		rng.Shuffle(len(activities), func(i, j int) {
			activities[i], activities[j] = activities[j], activities[i]
		})
		for _, a := range activities[:penalized] {
			penalty := uniform(rng, 0.5, 0.8)
			switch a {
			case domain.ActivityMining:
				ev.MiningMultiplier = penalty
			case domain.ActivityArt:
				ev.ArtMultiplier = penalty
			case domain.ActivityBuilding:
				ev.BuildingMultiplier = penalty
			}
		}
		ev.MarketFeeMultiplier = uniform(rng, 1.2, 1.5)
	case 3:
		ev.EventType = domain.EventBoom
		ev.Name = "Economic Boom"
		ev.Description = "Every productive activity surges; fees drop."
		ev.MiningMultiplier = uniform(rng, 1.3, 1.6)
		ev.ArtMultiplier = uniform(rng, 1.3, 1.6)
		ev.BuildingMultiplier = uniform(rng, 1.3, 1.6)
		ev.MarketFeeMultiplier = uniform(rng, 0.5, 0.8)
		ev.AffectsPixels = true
		ev.AffectsMaterials = true
		ev.AffectsGems = true
	}

	return ev
}
