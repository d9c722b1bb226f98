// Package cache implements the content-addressed two-tier result cache,
// spec §4.F: an in-memory index of valid fingerprints backed by one
// JSON file per fingerprint on disk, with TTL eviction and a corruption-
// tolerant read path. Grounded on the teacher's house logging style
// (internal/logging) since no dedicated cache package exists anywhere
// in the retrieval pack to adapt directly.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	domaincache "dataprofiler/domain/cache"
	"dataprofiler/domain/core"
	"dataprofiler/domain/profile"
	"dataprofiler/internal/logging"
)

// DefaultTTL is the cache entry lifetime, spec §4.F.
const DefaultTTL = 24 * time.Hour

// Store is the ports.Cache implementation: an in-memory index serialized
// by mu, each entry backed by a single JSON file under dir.
type Store struct {
	mu  sync.Mutex
	dir string
	ttl time.Duration
	log *logging.Logger

	index map[string]time.Time // fingerprint -> recorded timestamp
}

// New builds a Store rooted at dir, creating it if necessary, and loads
// whatever valid (non-expired, parseable) entries it already contains —
// spec §4.F's startup maintenance scan.
func New(dir string, ttl time.Duration, log *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Default
	}
	s := &Store{dir: dir, ttl: ttl, log: log, index: make(map[string]time.Time)}
	s.loadIndex()
	return s, nil
}

func (s *Store) loadIndex() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("cache: could not scan %s: %v", s.dir, err)
		return
	}
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > s.ttl {
			continue
		}
		fp := e.Name()[:len(e.Name())-len(".json")]
		entry, err := s.readEntry(fp)
		if err != nil {
			continue
		}
		s.index[fp] = entry.Timestamp.Time()
	}
}

// Fingerprint implements ports.Cache, spec §4.F: SHA-256 of
// H(content) || "|" || canonical(options), where canonical(options) is
// the fixed-order serialization of exactly {delimiter, skipEmptyLines}.
func (s *Store) Fingerprint(content []byte, delimiter string, skipEmptyLines bool) string {
	contentHash := core.NewHash(content)
	canonical := canonicalOptions(delimiter, skipEmptyLines)
	return core.NewHash([]byte(contentHash.String() + "|" + canonical)).String()
}

func canonicalOptions(delimiter string, skipEmptyLines bool) string {
	b, _ := json.Marshal(struct {
		Delimiter      string `json:"delimiter"`
		SkipEmptyLines bool   `json:"skipEmptyLines"`
	}{Delimiter: delimiter, SkipEmptyLines: skipEmptyLines})
	return string(b)
}

// Lookup implements ports.Cache, spec §4.F's lookup procedure: any read
// failure, corruption, missing file, or TTL expiry is treated as a miss
// and atomically evicts the index entry.
func (s *Store) Lookup(fingerprint string) (*profile.Report, bool) {
	s.mu.Lock()
	_, known := s.index[fingerprint]
	s.mu.Unlock()
	if !known {
		return nil, false
	}

	path := s.entryPath(fingerprint)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.ttl {
		s.evict(fingerprint)
		return nil, false
	}

	entry, err := s.readEntry(fingerprint)
	if err != nil {
		s.evict(fingerprint)
		return nil, false
	}

	// Touch mtime to signal recency, per spec.
	now := time.Now()
	_ = os.Chtimes(path, now, now)

	report := entry.Result
	return &report, true
}

// Store implements ports.Cache, spec §4.F's store procedure. Write
// failures are logged and reported as stored=false; they never bubble
// up as request errors.
func (s *Store) Store(fingerprint string, report *profile.Report) bool {
	entry := domaincache.Entry{
		Fingerprint: fingerprint,
		Timestamp:   core.Now(),
		Result:      *report,
	}

	b, err := json.Marshal(entry)
	if err != nil {
		s.log.Warn("cache: could not serialize entry %s: %v", fingerprint, err)
		return false
	}

	path := s.entryPath(fingerprint)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		s.log.Warn("cache: could not write entry %s: %v", fingerprint, err)
		return false
	}
	if err := os.Rename(tmp, path); err != nil {
		s.log.Warn("cache: could not finalize entry %s: %v", fingerprint, err)
		return false
	}

	s.mu.Lock()
	s.index[fingerprint] = entry.Timestamp.Time()
	s.mu.Unlock()
	return true
}

func (s *Store) readEntry(fingerprint string) (*domaincache.Entry, error) {
	b, err := os.ReadFile(s.entryPath(fingerprint))
	if err != nil {
		return nil, err
	}
	var entry domaincache.Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) entryPath(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}

func (s *Store) evict(fingerprint string) {
	s.mu.Lock()
	delete(s.index, fingerprint)
	s.mu.Unlock()
	_ = os.Remove(s.entryPath(fingerprint))
}
