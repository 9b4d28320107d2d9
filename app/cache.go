package app

import "container/list"

// PreviewEntry is one cached preview: rendered show/diff text plus a file
// summary, keyed by change id and validated by commit id.
type PreviewEntry struct {
	ChangeID  string
	CommitID  string
	Content   string
	FileCount int
}

// PreviewCache is a strict-LRU cache of rendered previews. In the log view,
// j/k navigation re-asks for the same handful of commits; without this every
// cursor move would run `jj show`. The commit id is the validation key: an
// amend changes the commit id but not the change id, so exactly the stale
// entry is invalidated while the rest of the cache stays warm.
type PreviewCache struct {
	capacity int
	order    *list.List               // front = most recently used
	entries  map[string]*list.Element // change id -> element holding PreviewEntry
}

// DefaultPreviewCapacity bounds the cache when config does not override it.
const DefaultPreviewCapacity = 32

// NewPreviewCache creates a cache with the given capacity (values < 1 fall
// back to the default).
func NewPreviewCache(capacity int) *PreviewCache {
	if capacity < 1 {
		capacity = DefaultPreviewCapacity
	}
	return &PreviewCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Peek returns the entry for changeID and marks it recently used.
func (c *PreviewCache) Peek(changeID string) (PreviewEntry, bool) {
	el, ok := c.entries[changeID]
	if !ok {
		return PreviewEntry{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(PreviewEntry), true
}

// Insert stores an entry, evicting the least recently used one past
// capacity. Inserting an existing change id replaces its entry.
func (c *PreviewCache) Insert(entry PreviewEntry) {
	if el, ok := c.entries[entry.ChangeID]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	c.entries[entry.ChangeID] = c.order.PushFront(entry)
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(PreviewEntry).ChangeID)
	}
}

// Touch marks an entry recently used without reading it.
func (c *PreviewCache) Touch(changeID string) {
	if el, ok := c.entries[changeID]; ok {
		c.order.MoveToFront(el)
	}
}

// Remove drops one entry.
func (c *PreviewCache) Remove(changeID string) {
	if el, ok := c.entries[changeID]; ok {
		c.order.Remove(el)
		delete(c.entries, changeID)
	}
}

// Validate returns the entry only if its stored commit id matches
// currentCommitID; a mismatch (the change was amended) removes the entry.
func (c *PreviewCache) Validate(changeID, currentCommitID string) (PreviewEntry, bool) {
	el, ok := c.entries[changeID]
	if !ok {
		return PreviewEntry{}, false
	}
	entry := el.Value.(PreviewEntry)
	if entry.CommitID != currentCommitID {
		c.Remove(changeID)
		return PreviewEntry{}, false
	}
	c.order.MoveToFront(el)
	return entry, true
}

// Clear drops every entry.
func (c *PreviewCache) Clear() {
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len returns the current entry count.
func (c *PreviewCache) Len() int {
	return c.order.Len()
}
