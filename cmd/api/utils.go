package main

import (
	"net/http"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/metrics"
)

// parseWindow reads the optional start_date/end_date query parameters
// (YYYY-MM-DD). Absent or malformed bounds are left open.
func parseWindow(r *http.Request) metrics.Window {
	var w metrics.Window
	if t, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date")); err == nil {
		w.Start = &t
	}
	if t, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date")); err == nil {
		w.End = &t
	}
	return w
}
