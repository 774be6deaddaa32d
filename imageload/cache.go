// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageload

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
)

// DefaultCacheCapacity is the number of decoded images a Cache keeps when
// created with a non-positive capacity.
const DefaultCacheCapacity = 32

// Cache is a Decoder that remembers the most recently decoded images by
// source. Failed decodes are not cached, so a Reload retries them.
//
// Cached images are shared between frames and must not be modified.
type Cache struct {
	next     Decoder
	capacity int

	mu      sync.Mutex
	entries map[string]*cacheNode
	lru     lruList

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewCache wraps next with an LRU cache holding up to capacity images.
func NewCache(next Decoder, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{next: next, capacity: capacity, entries: make(map[string]*cacheNode)}
}

// Decode implements Decoder.
func (c *Cache) Decode(ctx context.Context, src string) (image.Image, error) {
	if img, ok := c.get(src); ok {
		c.hits.Add(1)
		return img, nil
	}
	c.misses.Add(1)
	img, err := c.next.Decode(ctx, src)
	if err != nil {
		return nil, err
	}
	c.put(src, img)
	return img, nil
}

// Purge drops every cached image.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.lru = lruList{}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return CacheStats{Len: n, Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Cache) get(src string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[src]
	if !ok {
		return nil, false
	}
	c.lru.moveToFront(n)
	return n.img, true
}

func (c *Cache) put(src string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.entries[src]; ok {
		n.img = img
		c.lru.moveToFront(n)
		return
	}
	for c.lru.len >= c.capacity {
		oldest := c.lru.tail
		c.lru.unlink(oldest)
		delete(c.entries, oldest.src)
	}
	n := &cacheNode{src: src, img: img}
	c.lru.pushFront(n)
	c.entries[src] = n
}

// cacheNode is an entry of the LRU list; head is the most recently used.
type cacheNode struct {
	src        string
	img        image.Image
	prev, next *cacheNode
}

type lruList struct {
	head, tail *cacheNode
	len        int
}

func (l *lruList) pushFront(n *cacheNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
}

func (l *lruList) moveToFront(n *cacheNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.pushFront(n)
}

func (l *lruList) unlink(n *cacheNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
