package rpcclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

var tableFetches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "solmsg_lookup_table_fetches_total",
		Help: "Total number of address lookup table account fetches by result",
	}, []string{"result"})
