// Package stats exposes the taskflow_* metric families registered by the
// backend, db and web packages, plus the Go runtime collectors, on a listener
// separate from the API.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

var buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "taskflow",
	Name:      "build_info",
	Help:      "Always 1, labelled with the running version",
}, []string{"version"})

// SetVersion records the running version in taskflow_build_info.
func SetVersion(version string) {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version).Set(1)
}

// StatsServer serves /metrics on stats.listen_addr.
type StatsServer struct { //nolint:revive
	server *http.Server
}

// NewStatsServer returns a metrics server for the config in ctx.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	return &StatsServer{
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}, nil
}

// Handler serves the default registry at /metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
