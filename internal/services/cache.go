package services

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/gzip"

	"scorch/internal/domain"
)

const cacheVersion = 1
const maxCacheBytes = 4 << 20

// ScanSummary is the last-known result for a scanned root, shown in the UI
// before a fresh scan of the same root finishes. Only totals persist; the
// tree itself is session-scoped and never written to disk.
type ScanSummary struct {
	SizeBytes int64         `json:"sizeBytes"`
	Items     int           `json:"items"`
	Outcome   string        `json:"outcome"`
	ScannedAt time.Time     `json:"scannedAt"`
	Duration  time.Duration `json:"duration"`
}

type cacheFile struct {
	Version int                    `json:"version"`
	Roots   map[string]ScanSummary `json:"roots"`
}

type ScanCache struct {
	mu     sync.Mutex
	path   string
	loaded bool
	roots  map[string]ScanSummary
}

func NewScanCache() *ScanCache {
	return &ScanCache{
		path:  filepath.Join(xdg.CacheHome, "scorch", "scans.json.gz"),
		roots: map[string]ScanSummary{},
	}
}

func SummaryOf(root *domain.Node, result ScanResult) ScanSummary {
	return ScanSummary{
		SizeBytes: root.SizeBytes,
		Items:     root.ItemCount(),
		Outcome:   result.Session.Outcome.String(),
		ScannedAt: result.Session.StartedAt,
		Duration:  result.Duration,
	}
}

func (cache *ScanCache) Lookup(root string) (ScanSummary, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.loadLocked()
	summary, ok := cache.roots[cleanPath(root)]
	return summary, ok
}

func (cache *ScanCache) Store(root string, summary ScanSummary) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.loadLocked()
	cache.roots[cleanPath(root)] = summary
	cache.saveLocked()
}

func (cache *ScanCache) loadLocked() {
	if cache.loaded || cache.path == "" {
		cache.loaded = true
		return
	}
	cache.loaded = true
	file, err := os.Open(cache.path)
	if err != nil {
		return
	}
	defer file.Close()
	reader, err := gzip.NewReader(file)
	if err != nil {
		return
	}
	defer reader.Close()
	data, err := io.ReadAll(io.LimitReader(reader, maxCacheBytes))
	if err != nil {
		return
	}
	var stored cacheFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	if stored.Version != cacheVersion || stored.Roots == nil {
		return
	}
	cache.roots = stored.Roots
}

func (cache *ScanCache) saveLocked() {
	if cache.path == "" {
		return
	}
	data, err := json.Marshal(cacheFile{Version: cacheVersion, Roots: cache.roots})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(cache.path), 0o755); err != nil {
		return
	}
	file, err := os.OpenFile(cache.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	writer := gzip.NewWriter(file)
	_, writeErr := writer.Write(data)
	closeErr := writer.Close()
	fileErr := file.Close()
	if writeErr != nil || closeErr != nil || fileErr != nil {
		_ = os.Remove(cache.path)
	}
}
