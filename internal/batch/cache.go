package batch

import (
	"sync"

	"github.com/dgryski/go-tinylfu"
	"github.com/woozymasta/lz77"
)

// cacheKey identifies a compressed input by content, so identical assets
// stored under different names decode once per run.
type cacheKey struct {
	sum     uint64 // xxhash of the compressed bytes
	size    int
	variant lz77.Variant
}

type cacheEntry struct {
	out  []byte
	diag lz77.Diagnostics
}

// decodeCache is a W-TinyLFU cache of decoded outputs, safe for concurrent use.
type decodeCache struct {
	mu  sync.Mutex
	lfu *tinylfu.T[cacheKey, cacheEntry]
}

func newDecodeCache(entries int) *decodeCache {
	if entries <= 0 {
		return nil
	}

	return &decodeCache{
		lfu: tinylfu.New[cacheKey, cacheEntry](entries, entries*10, keyHash),
	}
}

func keyHash(k cacheKey) uint64 {
	return k.sum ^ uint64(k.size)<<8 ^ uint64(k.variant)
}

func (c *decodeCache) get(k cacheKey) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lfu.Get(k)
}

func (c *decodeCache) add(k cacheKey, e cacheEntry) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.lfu.Add(k, e)
	c.mu.Unlock()
}
