package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GenerationsTotal counts reply generations by outcome (ok, error).
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "replydraft_generations_total",
		Help: "Reply generations by outcome.",
	}, []string{"outcome"})

	// GenerationRetries counts retried attempts against the completion
	// endpoint, not counting the first attempt.
	GenerationRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replydraft_generation_retries_total",
		Help: "Retried completion attempts after transient failures.",
	})

	// RedditFetches counts post fetches by the path that produced the
	// record (json, html).
	RedditFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "replydraft_reddit_fetches_total",
		Help: "Successful reddit fetches by source.",
	}, []string{"source"})

	// ErrorsTotal counts categorized failures surfaced to clients.
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "replydraft_errors_total",
		Help: "Failures surfaced to clients, by category.",
	}, []string{"category"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
