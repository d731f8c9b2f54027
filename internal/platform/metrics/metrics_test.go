package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.TransactionInitiated("OUTGOING")
	r.TransactionInitiated("OUTGOING")
	r.TransactionTransitioned("COMPLETED")
	r.BalanceExecuted("OUTGOING")
	r.ReconciliationAccount(OutcomeGenerated)
	r.ReconciliationAccount(OutcomeSkipped)
	r.ReconciliationAccount(OutcomeSkipped)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.initiated.WithLabelValues("OUTGOING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.executions.WithLabelValues("OUTGOING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reconciledAccounts.WithLabelValues(OutcomeGenerated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.reconciledAccounts.WithLabelValues(OutcomeSkipped)))
}

func TestRecorderHTTPAndHandler(t *testing.T) {
	r := NewRecorder()
	r.HTTPRequest(http.MethodPost, "/api/v1/org-banking/transactions/:id/sign", http.StatusOK, 20*time.Millisecond)
	r.HTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	r.ReconciliationRun(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.reconcileDuration))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "org_banking_http_requests_total"))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.TransactionInitiated("INCOMING")
		r.TransactionTransitioned("REJECTED")
		r.BalanceExecuted("INCOMING")
		r.ReconciliationAccount(OutcomeFailed)
		r.ReconciliationRun(time.Second)
		r.HTTPRequest("GET", "/health", 200, time.Millisecond)
	})
	assert.Nil(t, r.Registry())
}
