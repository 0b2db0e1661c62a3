// Package metrics provides the process-wide stats.Tracker.
//
// Features report counters through the github.com/bool64/stats Tracker
// interface; Registry turns them into Prometheus counters and gauges and serves
// them, together with the Go runtime collectors, on GET /metrics.
package metrics
