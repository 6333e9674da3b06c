// Package cache provides the small LRU cache used for text layouts.
//
//	layouts := cache.New[layoutKey, TextLayout](256)
//	layout := layouts.GetOrCreate(key, func() TextLayout { return shape(key) })
//
// Cache is safe for concurrent use: render workers and the engine goroutine
// both lay out text.
package cache
