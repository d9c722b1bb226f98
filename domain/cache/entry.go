// Package cache holds the on-disk/in-memory entry shape spec §3/§4.F
// defines for the content-addressed result cache.
package cache

import (
	"dataprofiler/domain/core"
	"dataprofiler/domain/profile"
)

// Entry is one cached report, serialized to <cacheDir>/<fingerprint>.json.
type Entry struct {
	Fingerprint string         `json:"fingerprint"`
	Timestamp   core.Timestamp `json:"timestamp"`
	Result      profile.Report `json:"result"`
}
