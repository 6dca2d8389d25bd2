package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncAttempt_RejectionIsNotAStepFailure(t *testing.T) {
	failuresBefore := testutil.ToFloat64(syncStepFailures.WithLabelValues("acquire"))
	rejectionsBefore := testutil.ToFloat64(syncRejections.WithLabelValues("SYNC_IN_PROGRESS"))
	inFlightBefore := testutil.ToFloat64(syncsInFlight)

	var rec SyncRecorder
	a := rec.Started()
	assert.Equal(t, inFlightBefore+1, testutil.ToFloat64(syncsInFlight))
	a.Rejected("SYNC_IN_PROGRESS")

	assert.Equal(t, failuresBefore, testutil.ToFloat64(syncStepFailures.WithLabelValues("acquire")))
	assert.Equal(t, rejectionsBefore+1, testutil.ToFloat64(syncRejections.WithLabelValues("SYNC_IN_PROGRESS")))
	assert.Equal(t, inFlightBefore, testutil.ToFloat64(syncsInFlight))
}

func TestSyncAttempt_FailureCountsStep(t *testing.T) {
	before := testutil.ToFloat64(syncStepFailures.WithLabelValues("repository_write"))
	totalBefore := testutil.ToFloat64(syncTotal.WithLabelValues("REPOSITORY_WRITE_FAILED"))

	var rec SyncRecorder
	rec.Started().Failed("REPOSITORY_WRITE_FAILED", "repository_write")

	assert.Equal(t, before+1, testutil.ToFloat64(syncStepFailures.WithLabelValues("repository_write")))
	assert.Equal(t, totalBefore+1, testutil.ToFloat64(syncTotal.WithLabelValues("REPOSITORY_WRITE_FAILED")))
}

func TestSyncAttempt_Succeeded(t *testing.T) {
	before := testutil.ToFloat64(syncTotal.WithLabelValues(OutcomeSuccess))

	var rec SyncRecorder
	rec.Started().Succeeded()

	assert.Equal(t, before+1, testutil.ToFloat64(syncTotal.WithLabelValues(OutcomeSuccess)))
}

func TestGenerationStatus(t *testing.T) {
	before := testutil.ToFloat64(generationsTotal.WithLabelValues("ready"))
	GenerationStatus("ready")
	assert.Equal(t, before+1, testutil.ToFloat64(generationsTotal.WithLabelValues("ready")))
}
