package metrics

import "sync"

// bucketBounds are the upper bound (exclusive) of each size bucket, in
// bytes. A value at or above the last bound falls into the overflow
// bucket, labeled "+".
var bucketBounds = []int{64, 512, 4096, 32768, 262144}

// Histogram counts values by size bucket. The zero value is an empty
// histogram.
type Histogram struct {
	buckets map[string]int64
}

func newHistogram() Histogram {
	return Histogram{buckets: make(map[string]int64)}
}

func bucketLabel(n int) string {
	for _, bound := range bucketBounds {
		if n < bound {
			return bucketName(bound)
		}
	}

	return "+"
}

func bucketName(bound int) string {
	switch bound {
	case 64:
		return "0-63"
	case 512:
		return "64-511"
	case 4096:
		return "512-4095"
	case 32768:
		return "4096-32767"
	case 262144:
		return "32768-262143"
	default:
		return "+"
	}
}

func (h Histogram) observe(n int) {
	h.buckets[bucketLabel(n)]++
}

// Snapshot returns a copy of the histogram's current bucket counts,
// safe to retain after the source [Metrics] continues mutating.
func (h Histogram) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(h.buckets))
	for k, v := range h.buckets {
		out[k] = v
	}

	return out
}

// Metrics accumulates the engine-wide counters exposed under the host's
// json_core_metrics info section. All writes to a single document pass
// through the host's single-threaded dispatch loop (see the engine's
// concurrency model), but a background snapshot writer the host may spawn
// can read concurrently, so every accessor takes the same mutex a writer
// would.
type Metrics struct {
	mu sync.Mutex

	numDocuments     int64
	totalMemoryBytes int64

	maxPathDepthEverSeen    int
	maxDocumentSizeEverSeen int

	docHistogram    Histogram
	readHistogram   Histogram
	insertHistogram Histogram
	updateHistogram Histogram
	deleteHistogram Histogram
}

// New returns an empty [Metrics].
func New() *Metrics {
	return &Metrics{
		docHistogram:    newHistogram(),
		readHistogram:   newHistogram(),
		insertHistogram: newHistogram(),
		updateHistogram: newHistogram(),
		deleteHistogram: newHistogram(),
	}
}

// DocumentCreated records a new document of sizeBytes, incrementing the
// document count and total memory, and observing sizeBytes in the
// document-size histogram.
func (m *Metrics) DocumentCreated(sizeBytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.numDocuments++
	m.totalMemoryBytes += int64(sizeBytes)
	m.docHistogram.observe(sizeBytes)
	m.observeDocSizeLocked(sizeBytes)
}

// DocumentDeleted records the removal of a document of sizeBytes.
func (m *Metrics) DocumentDeleted(sizeBytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.numDocuments--
	m.totalMemoryBytes -= int64(sizeBytes)
	if m.totalMemoryBytes < 0 {
		m.totalMemoryBytes = 0
	}
}

// DocumentResized updates total memory and the high-water mark after a
// document's size changes from oldSize to newSize bytes.
func (m *Metrics) DocumentResized(oldSize, newSize int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalMemoryBytes += int64(newSize - oldSize)
	if m.totalMemoryBytes < 0 {
		m.totalMemoryBytes = 0
	}

	m.observeDocSizeLocked(newSize)
}

func (m *Metrics) observeDocSizeLocked(sizeBytes int) {
	if sizeBytes > m.maxDocumentSizeEverSeen {
		m.maxDocumentSizeEverSeen = sizeBytes
	}
}

// RecordRead observes a read operation's result size in bytes.
func (m *Metrics) RecordRead(sizeBytes int) { m.observe(&m.readHistogram, sizeBytes) }

// RecordInsert observes an insert operation's new-value size in bytes.
func (m *Metrics) RecordInsert(sizeBytes int) { m.observe(&m.insertHistogram, sizeBytes) }

// RecordUpdate observes an update operation's new-value size in bytes.
func (m *Metrics) RecordUpdate(sizeBytes int) { m.observe(&m.updateHistogram, sizeBytes) }

// RecordDelete observes a delete operation's removed-value size in bytes.
func (m *Metrics) RecordDelete(sizeBytes int) { m.observe(&m.deleteHistogram, sizeBytes) }

func (m *Metrics) observe(h *Histogram, sizeBytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h.observe(sizeBytes)
}

// RecordDepth updates the all-time maximum tree depth seen after a
// successful write.
func (m *Metrics) RecordDepth(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if depth > m.maxPathDepthEverSeen {
		m.maxPathDepthEverSeen = depth
	}
}

// Snapshot is a point-in-time copy of every introspection key under
// json_core_metrics.
type Snapshot struct {
	NumDocuments         int64
	TotalMemoryBytes     int64
	DocHistogram         map[string]int64
	ReadHistogram        map[string]int64
	InsertHistogram      map[string]int64
	UpdateHistogram      map[string]int64
	DeleteHistogram      map[string]int64
	MaxPathDepthEverSeen int
	MaxDocSizeEverSeen   int
	TotalMallocBytesUsed int64
	MemoryTrapsEnabled   bool
}

// Snapshot returns the current values of every metric.
// TotalMallocBytesUsed mirrors TotalMemoryBytes: the engine does not
// track allocator-level overhead separately from document bytes.
// MemoryTrapsEnabled is always false; the engine has no allocator-trap
// integration.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		NumDocuments:         m.numDocuments,
		TotalMemoryBytes:     m.totalMemoryBytes,
		DocHistogram:         m.docHistogram.Snapshot(),
		ReadHistogram:        m.readHistogram.Snapshot(),
		InsertHistogram:      m.insertHistogram.Snapshot(),
		UpdateHistogram:      m.updateHistogram.Snapshot(),
		DeleteHistogram:      m.deleteHistogram.Snapshot(),
		MaxPathDepthEverSeen: m.maxPathDepthEverSeen,
		MaxDocSizeEverSeen:   m.maxDocumentSizeEverSeen,
		TotalMallocBytesUsed: m.totalMemoryBytes,
		MemoryTrapsEnabled:   false,
	}
}

// InfoFields renders a [Snapshot] as the key/value pairs the host's INFO
// command prints under the json_core_metrics section.
func (s Snapshot) InfoFields() map[string]any {
	return map[string]any{
		"json_num_documents":              s.NumDocuments,
		"json_total_memory_bytes":         s.TotalMemoryBytes,
		"json_doc_histogram":              s.DocHistogram,
		"json_read_histogram":             s.ReadHistogram,
		"json_insert_histogram":           s.InsertHistogram,
		"json_update_histogram":           s.UpdateHistogram,
		"json_delete_histogram":           s.DeleteHistogram,
		"json_max_path_depth_ever_seen":   s.MaxPathDepthEverSeen,
		"json_max_document_size_ever_seen": s.MaxDocSizeEverSeen,
		"json_total_malloc_bytes_used":    s.TotalMallocBytesUsed,
		"json_memory_traps_enabled":       s.MemoryTrapsEnabled,
	}
}
