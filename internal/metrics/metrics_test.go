// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordLookup("rendered")
	m.RecordLookup("rendered")
	m.RecordLookup("no_results")
	m.RecordKeyRotation("0")
	m.RecordSearch("ok", 120*time.Millisecond)
	m.SetOpenPanels(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("rendered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("no_results")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KeyRotations.WithLabelValues("0")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OpenPanels))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLookup("rendered")
		m.RecordSearch("ok", time.Second)
		m.RecordKeyRotation("0")
		m.SetOpenPanels(1)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RecordLookup("aborted")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stackfind_lookups_total{outcome="aborted"} 1`)
}
