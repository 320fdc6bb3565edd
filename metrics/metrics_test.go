package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jsondoc.dev/jsondoc/metrics"
)

func TestDocumentLifecycleUpdatesCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.DocumentCreated(100)
	m.DocumentCreated(200)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.NumDocuments)
	assert.Equal(t, int64(300), snap.TotalMemoryBytes)
	assert.Equal(t, 200, snap.MaxDocSizeEverSeen)

	m.DocumentDeleted(100)

	snap = m.Snapshot()
	assert.Equal(t, int64(1), snap.NumDocuments)
	assert.Equal(t, int64(200), snap.TotalMemoryBytes)
	assert.Equal(t, 200, snap.MaxDocSizeEverSeen, "high-water mark does not decrease on delete")
}

func TestRecordDepthTracksHighWaterMark(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.RecordDepth(3)
	m.RecordDepth(1)
	m.RecordDepth(5)

	assert.Equal(t, 5, m.Snapshot().MaxPathDepthEverSeen)
}

func TestHistogramBucketsBySize(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.RecordRead(10)
	m.RecordRead(100)
	m.RecordRead(1_000_000)

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.ReadHistogram["0-63"])
	assert.Equal(t, int64(1), snap.ReadHistogram["64-511"])
	assert.Equal(t, int64(1), snap.ReadHistogram["+"])
}

func TestInfoFieldsExposesEveryIntrospectionKey(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	fields := m.Snapshot().InfoFields()

	for _, key := range []string{
		"json_num_documents",
		"json_total_memory_bytes",
		"json_doc_histogram",
		"json_read_histogram",
		"json_insert_histogram",
		"json_update_histogram",
		"json_delete_histogram",
		"json_max_path_depth_ever_seen",
		"json_max_document_size_ever_seen",
		"json_total_malloc_bytes_used",
		"json_memory_traps_enabled",
	} {
		_, ok := fields[key]
		assert.True(t, ok, "missing key %s", key)
	}
}
