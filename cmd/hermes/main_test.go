package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestMonitoringServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	tests := []struct {
		name   string
		path   string
		db     fakePinger
		status int
		body   string
	}{
		{name: "healthy", path: "/healthz", status: http.StatusOK, body: "OK"},
		{name: "db down", path: "/healthz", db: fakePinger{err: assert.AnError}, status: http.StatusServiceUnavailable, body: "DB ping failed"},
		{name: "metrics", path: "/metrics", status: http.StatusOK, body: "probe_total 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newMonitoringServer(t.Context(), slog.Default(), reg, tt.db, 0)
			recorder := httptest.NewRecorder()

			server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.body)
		})
	}
}
