package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStageItem(t *testing.T) {
	before := testutil.ToFloat64(StageItems.WithLabelValues("validate", OutcomeRejected))

	RecordStageItem("validate", OutcomeRejected)
	RecordStageItem("validate", OutcomeRejected)

	after := testutil.ToFloat64(StageItems.WithLabelValues("validate", OutcomeRejected))
	assert.Equal(t, before+2, after)
}

func TestRecordStored_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(StoredArticles)

	RecordStored(0)
	RecordStored(3)

	assert.Equal(t, before+3, testutil.ToFloat64(StoredArticles))
}

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRuns.WithLabelValues("digest", "success"))

	RecordRun("digest", "success", 2*time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(PipelineRuns.WithLabelValues("digest", "success")))
}
