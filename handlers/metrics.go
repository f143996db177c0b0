package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"tdbot/services/stats"
)

// MetricsHandler exposes the in-memory usage counters as a plain-text
// exposition, gated by a shared bearer secret.
type MetricsHandler struct {
	collector *stats.Collector
	secret    string
}

func NewMetricsHandler(collector *stats.Collector, secret string) *MetricsHandler {
	return &MetricsHandler{collector: collector, secret: secret}
}

// HandleMetrics is the GET /metrics endpoint
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" || r.Header.Get("Authorization") != "Bearer "+h.secret {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snapshot := h.collector.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "commands_total %d\n", snapshot.TotalLifetime)
	fmt.Fprintf(&b, "commands_this_minute %d\n", snapshot.TotalThisMinute)
	fmt.Fprintf(&b, "commands_succeeded_total %d\n", snapshot.Succeeded)
	fmt.Fprintf(&b, "commands_failed_total %d\n", snapshot.Failed)
	fmt.Fprintf(&b, "minutes_tracked %d\n", snapshot.MinutesPassed)
	fmt.Fprintf(&b, "commands_per_minute_avg %s\n", snapshot.AveragePerMinute.StringFixed(4))

	names := make([]string, 0, len(snapshot.CommandsLifetime))
	for name := range snapshot.CommandsLifetime {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "command_total{command=%q} %d\n", name, snapshot.CommandsLifetime[name])
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, b.String())
}
