package stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskflow",
	Subsystem: "stats_test",
	Name:      "hits_total",
	Help:      "Counter exercised by the stats tests",
})

func TestHandlerServesMetrics(t *testing.T) {
	is := is.New(t)
	testCounter.Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	is.NoErr(err)
	defer res.Body.Close() // nolint: errcheck
	is.Equal(res.StatusCode, http.StatusOK)

	b, err := io.ReadAll(res.Body)
	is.NoErr(err)
	is.True(strings.Contains(string(b), "taskflow_stats_test_hits_total 1"))
}

func TestBuildInfo(t *testing.T) {
	is := is.New(t)
	SetVersion("old")
	SetVersion("v1.2.3")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	is.True(strings.Contains(body, `taskflow_build_info{version="v1.2.3"} 1`))
	is.True(!strings.Contains(body, `version="old"`))
}

func TestNewStatsServerNeedsConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewStatsServer(context.Background())
	is.True(err != nil)

	ctx := config.WithContext(context.Background(), config.DefaultConfig())
	s, err := NewStatsServer(ctx)
	is.NoErr(err)
	is.Equal(s.server.Addr, "localhost:8788")
}
