// Package stats serves aggregate statistics over the item collection.
//
// Computing the statistics reads the whole collection, so results are cached
// for a TTL and recomputed at most once per miss no matter how many requests
// arrive together. A background poll of the collection modification time
// invalidates the cache as soon as the data changes.
//
// # Components
//
//   - Aggregate: single pass over items producing a Snapshot.
//   - Cache: the snapshot, its install time, the calculating flag and a
//     generation counter bumped on every invalidation.
//   - Detector: compares the store modification time with a watermark and
//     invalidates on advance. Run polls on a ticker until its context ends.
//   - Coordinator: hit-or-compute logic, single flight, forced refresh and
//     warm-up.
//   - Handler: HTTP endpoints.
//
// # Cache lifecycle
//
//	EMPTY --compute--> VALID --ttl elapsed--> STALE --compute--> VALID
//	  ^                  |                      |
//	  +----invalidate----+----------------------+
//
// A computation started before an invalidation never overwrites the cache
// afterwards: results are installed only if the generation they were started
// for is still current.
//
// # HTTP Endpoints
//
//   - GET /api/stats : Snapshot, with X-Cache HIT or MISS.
//   - POST /api/stats/refresh : Invalidate and recompute.
//   - GET /api/stats/cache-info : Cache state and counters.
package stats
