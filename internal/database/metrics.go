package database

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_storage_connect_attempts_total",
			Help: "Storage connection attempts by outcome",
		},
		[]string{"outcome"},
	)

	storageState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_storage_state",
			Help: "1 for the current storage manager state, 0 otherwise",
		},
		[]string{"state"},
	)
)

var allStates = []State{StateUnset, StateConnecting, StateReady, StateFailed, StateDisabled}

func setStateGauge(current State) {
	for _, s := range allStates {
		v := 0.0
		if s == current {
			v = 1
		}
		storageState.WithLabelValues(string(s)).Set(v)
	}
}
