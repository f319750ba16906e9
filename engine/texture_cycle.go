package engine

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-quad/common"
)

// TextureCycle is the ordered list of texture identifiers the viewer steps through, with the
// index of the one currently shown.
type TextureCycle struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewTextureCycle creates a cycle over entries, starting at the first one.
//
// Parameters:
//   - entries: the texture identifiers in display order
//
// Returns:
//   - *TextureCycle: the cycle
func NewTextureCycle(entries []string) *TextureCycle {
	return &TextureCycle{entries: append([]string(nil), entries...)}
}

// Current returns the identifier at the current index, or "" for an empty cycle.
func (c *TextureCycle) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return ""
	}
	return c.entries[c.index]
}

// Advance moves to the next entry, wrapping to the first after the last.
//
// Returns:
//   - string: the new current identifier, or "" for an empty cycle
func (c *TextureCycle) Advance() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return ""
	}
	c.index = common.WrapIndex(c.index, 1, len(c.entries))
	return c.entries[c.index]
}

// Index returns the current position.
func (c *TextureCycle) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of entries.
func (c *TextureCycle) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries returns a copy of the identifiers.
func (c *TextureCycle) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.entries...)
}

// Remove drops every occurrence of identifier. The current entry stays current when it
// survives; otherwise the index is clamped into range.
//
// Parameters:
//   - identifier: the entry to drop
func (c *TextureCycle) Remove(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	newIndex := -1
	for i, e := range c.entries {
		if e == identifier {
			continue
		}
		if i == c.index {
			newIndex = len(kept)
		}
		kept = append(kept, e)
	}
	c.entries = kept
	switch {
	case newIndex >= 0:
		c.index = newIndex
	case c.index >= len(c.entries):
		c.index = 0
	}
}
