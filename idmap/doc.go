// Package idmap provides id/vertex converter implementations.
//
// MemIdMap is a complete in-memory dagset.IdConvert with version tracking
// and a local/remote id partition, suitable for embedding and for driving
// the batched resolution path in tests. RateLimited wraps any converter
// with request throttling for remote-backed deployments.
package idmap
