package challenge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portfolio_challenge_outcomes_total",
		Help: "Challenge issue and redeem outcomes",
	},
	[]string{"operation", "outcome"},
)
