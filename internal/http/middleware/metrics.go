package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	EconomyActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_actions_total",
			Help: "Economy actions processed, by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	MiniGamePlays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mini_game_plays_total",
			Help: "Mini-game rounds played, by game type",
		},
		[]string{"game_type"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(EconomyActions)
	prometheus.MustRegister(MiniGamePlays)
}
