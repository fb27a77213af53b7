// Package cache provides the bounded LRU cache behind label footprint
// measurement.
//
//	c := cache.New[string, labels.Point](512)
//	size := c.GetOrCreate(key, func() labels.Point { return measure(key) })
//
// Cache is safe for concurrent use: tile workers measure labels while
// building publications in parallel. It must not be copied after creation.
package cache
