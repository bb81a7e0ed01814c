// Package sliceutil provides generic slice helpers.
package sliceutil

// UniqueBy keeps the first item for each key, in input order.
func UniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Unique keeps the first occurrence of each item, in input order.
//
//	Unique([]string{"/lessons/1", "/lessons/2", "/lessons/1"}) // ["/lessons/1", "/lessons/2"]
func Unique[T comparable](items []T) []T {
	return UniqueBy(items, func(item T) T { return item })
}

// StablePartition returns a new slice with the items satisfying pred
// first, followed by the rest. Relative order inside each group is kept.
func StablePartition[T any](items []T, pred func(T) bool) []T {
	if len(items) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	var rest []T
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(out, rest...)
}
