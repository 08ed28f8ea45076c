package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var movieMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movieapi_movie_mutations_total",
		Help: "Total number of successful movie mutations",
	},
	[]string{"operation"},
)

func observeMutation(operation string) {
	movieMutationsTotal.WithLabelValues(operation).Inc()
}
