package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type processedEntry struct {
	Link      string `json:"link"`
	Timestamp int64  `json:"timestamp"`
}

// ProcessedCache remembers every link that was already classified, accepted or
// rejected, so rejected posts are not re-classified on later runs. The lead
// store alone only covers accepted leads.
type ProcessedCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

// Entries older than this are dropped on load so a stale rejection does not
// suppress a post forever.
const processedTTLMs = int64(30 * 24 * 60 * 60 * 1000)

// NewProcessedCache creates or loads the processed-link cache under cacheDir.
func NewProcessedCache(cacheDir string) *ProcessedCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &ProcessedCache{
		filePath: filepath.Join(cacheDir, "processed_links.json"),
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsProcessed checks whether a link was already classified in a prior run.
func (pc *ProcessedCache) IsProcessed(link string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	_, exists := pc.seen[link]
	return exists
}

// Mark records links as classified and persists the cache.
func (pc *ProcessedCache) Mark(links ...string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, link := range links {
		if _, exists := pc.seen[link]; !exists {
			pc.seen[link] = now
			changed = true
		}
	}
	if changed {
		pc.save()
	}
}

// load reads the cache from disk, dropping expired entries. Failures leave the
// cache empty; the agent still works, it just re-classifies old rejections.
func (pc *ProcessedCache) load() {
	data, err := os.ReadFile(pc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read processed_links.json: %v", err)
		}
		return
	}

	var entries []processedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse processed_links.json: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - processedTTLMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			pc.seen[e.Link] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously classified links (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk. Caller holds the lock.
func (pc *ProcessedCache) save() {
	entries := make([]processedEntry, 0, len(pc.seen))
	for link, ts := range pc.seen {
		entries = append(entries, processedEntry{Link: link, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal processed links: %v", err)
		return
	}
	if err := os.WriteFile(pc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write processed_links.json: %v", err)
	}
}
