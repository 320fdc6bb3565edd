// Package metrics tracks the engine-wide counters and size-bucketed
// histograms exposed under the host's json_core_metrics info section:
// document count, total memory bytes, per-operation histograms, and the
// high-water marks for path depth and document size.
package metrics
