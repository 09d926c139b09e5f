package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessedCacheMarkAndCheck(t *testing.T) {
	cache := NewProcessedCache(t.TempDir())

	assert.False(t, cache.IsProcessed("L1"))
	cache.Mark("L1", "L2")
	assert.True(t, cache.IsProcessed("L1"))
	assert.True(t, cache.IsProcessed("L2"))
	assert.False(t, cache.IsProcessed("L3"))
}

func TestProcessedCacheSurvivesReload(t *testing.T) {
	dir := t.TempDir()

	NewProcessedCache(dir).Mark("L1")

	reloaded := NewProcessedCache(dir)
	assert.True(t, reloaded.IsProcessed("L1"))
}

func TestProcessedCacheCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed_links.json"), []byte("{not json"), 0644))

	cache := NewProcessedCache(dir)

	assert.False(t, cache.IsProcessed("L1"))
}

func TestProcessedCacheExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	stale := time.Now().UnixMilli() - processedTTLMs - 1000
	entries := []processedEntry{
		{Link: "old", Timestamp: stale},
		{Link: "recent", Timestamp: time.Now().UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed_links.json"), data, 0644))

	cache := NewProcessedCache(dir)

	assert.False(t, cache.IsProcessed("old"))
	assert.True(t, cache.IsProcessed("recent"))
}
