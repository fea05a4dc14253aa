package validator

import (
	"container/list"
	"regexp"
	"sync"
)

const defaultPatternCacheSize = 128

// patternCache keeps the most recently used compiled patterns so that match
// rules with string patterns do not recompile on every call.
type patternCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

type patternEntry struct {
	pattern string
	re      *regexp.Regexp
}

func newPatternCache(capacity int) *patternCache {
	if capacity <= 0 {
		capacity = defaultPatternCacheSize
	}
	return &patternCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// compile returns the compiled pattern, compiling and caching it on a miss.
func (c *patternCache) compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	if elem, ok := c.items[pattern]; ok {
		c.eviction.MoveToFront(elem)
		re := elem.Value.(*patternEntry).re
		c.mu.Unlock()
		return re, nil
	}
	c.mu.Unlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[pattern]; ok {
		c.eviction.MoveToFront(elem)
		return elem.Value.(*patternEntry).re, nil
	}
	c.items[pattern] = c.eviction.PushFront(&patternEntry{pattern: pattern, re: re})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*patternEntry).pattern)
	}
	return re, nil
}

func (c *patternCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Pattern compiles pattern through the engine's pattern cache.
func (c *Context) Pattern(pattern string) (*regexp.Regexp, error) {
	return c.engine.patterns.compile(pattern)
}
