package trace

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of recently sent payloads. It is only
// accessed from the hub goroutine.
type cache struct {
	entries []cacheEntry
	idx     int
}

func newCache(size int) *cache {
	return &cache{
		entries: make([]cacheEntry, size),
	}
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.data != nil && e.hash == hash {
			return i
		}
	}

	return -1
}

// add stores data in the oldest slot and returns the slot used.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}

// latest returns the slot most recently added to, or -1 if the cache
// is empty.
func (c *cache) latest() int {
	i := (c.idx + len(c.entries) - 1) % len(c.entries)
	if c.entries[i].data == nil {
		return -1
	}
	return i
}

// each calls fn for every filled slot, oldest first.
func (c *cache) each(fn func(idx int, data []byte)) {
	for n := 0; n < len(c.entries); n++ {
		i := (c.idx + n) % len(c.entries)
		if c.entries[i].data == nil {
			continue
		}
		fn(i, c.entries[i].data)
	}
}
