package service

import (
	"context"
	"math/rand"
	"sync"

	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MarketService exposes resource price data. Order matching is not live yet;
// prices move on a bounded random walk so dashboards have something to chart.
type MarketService struct {
	market *repository.MarketRepository
	states *repository.StateRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMarketService(db *pgxpool.Pool) *MarketService {
	return &MarketService{
		market: repository.NewMarketRepository(db),
		states: repository.NewStateRepository(db),
		rng:    game.NewRand(),
	}
}

// Prices returns the latest snapshot per resource.
func (s *MarketService) Prices(ctx context.Context) ([]*domain.MarketHistory, error) {
	return s.market.LatestPrices(ctx)
}

// History returns recent snapshots for one resource, oldest first.
func (s *MarketService) History(ctx context.Context, resourceType string, limit int) ([]*domain.MarketHistory, error) {
	return s.market.PriceHistory(ctx, resourceType, limit)
}

// Orders lists the user's open orders.
func (s *MarketService) Orders(ctx context.Context, userID int64) ([]*domain.MarketOrder, error) {
	st, err := s.states.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.market.OpenOrders(ctx, st.ID, 50)
}

// Tick advances every resource price one random-walk step and records the
// snapshot. Prices stay within ±25% of the previous value per step.
func (s *MarketService) Tick(ctx context.Context) error {
	latest, err := s.market.LatestPrices(ctx)
	if err != nil {
		return err
	}

	for _, prev := range latest {
		s.mu.Lock()
		drift := 1.0 + (s.rng.Float64()-0.5)*0.5
		volume := prev.Volume/2 + s.rng.Intn(prev.Volume+1)
		s.mu.Unlock()

		price := prev.AvgPrice * drift
		if price <= 0 {
			price = prev.AvgPrice
		}

		change := 0.0
		if prev.AvgPrice > 0 {
			change = (price - prev.AvgPrice) / prev.AvgPrice * 100
		}

		snap := &domain.MarketHistory{
			ResourceType:   prev.ResourceType,
			AvgPrice:       game.Round2(price),
			Volume:         volume,
			PriceChange24h: game.Round2(change),
			HighestPrice:   game.Round2(price * 1.1),
			LowestPrice:    game.Round2(price * 0.9),
		}
		if err := s.market.RecordSnapshot(ctx, snap); err != nil {
			return err
		}
		logger.Debug("market snapshot recorded",
			"resource", snap.ResourceType, "price", snap.AvgPrice)
	}
	return nil
}
