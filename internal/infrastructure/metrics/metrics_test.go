package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultMetrics_Singleton(t *testing.T) {
	assert.Same(t, GetDefaultMetrics(), GetDefaultMetrics())
}

func TestMetrics_RecordProfileSaved(t *testing.T) {
	m := GetDefaultMetrics()
	before := testutil.ToFloat64(m.ProfilesSaved.WithLabelValues("created"))

	m.RecordProfileSaved(true)
	m.RecordProfileSaved(false)

	assert.Equal(t, before+1, testutil.ToFloat64(m.ProfilesSaved.WithLabelValues("created")))
}

func TestMetrics_RecordImage(t *testing.T) {
	m := GetDefaultMetrics()
	before := testutil.ToFloat64(m.ImagesRejected.WithLabelValues("unknown"))

	m.RecordImageStored("s3", 0.2)
	m.RecordImageStored("inline", 0)
	m.RecordImageRejected("")

	assert.Equal(t, before+1, testutil.ToFloat64(m.ImagesRejected.WithLabelValues("unknown")))
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := GetDefaultMetrics()
	m.RecordEvent("news.created", 0.01)
	m.RecordEventError("news.created")
	m.RecordError("chat", "delete")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationErrors.WithLabelValues("chat", "delete")))
}
