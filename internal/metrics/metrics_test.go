package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/secretsync/internal/sync"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()
	recorder.Record(sync.Summary{
		Discovered:    5,
		Synced:        3,
		Failed:        2,
		AppliesOK:     7,
		AppliesFailed: 1,
	}, 1500*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(recorder.secretsDiscovered))
	assert.Equal(t, 3.0, testutil.ToFloat64(recorder.secretsSynced))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.secretsFailed))
	assert.Equal(t, 7.0, testutil.ToFloat64(recorder.appliesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.appliesTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.5, testutil.ToFloat64(recorder.runDuration))
	assert.InDelta(t, float64(time.Now().Unix()), testutil.ToFloat64(recorder.lastRunTimestamp), 5)
}

func TestPush(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	recorder := NewRecorder()
	recorder.Record(sync.Summary{Discovered: 1, Synced: 1, AppliesOK: 1}, time.Second)

	require.NoError(t, recorder.Push(server.URL))
	assert.Equal(t, "/metrics/job/secretsync", gotPath)
}

func TestPushUnreachableGateway(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()
	assert.Error(t, recorder.Push("http://127.0.0.1:1"))
}
