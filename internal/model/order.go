package model

import (
	"cmp"
	"slices"
)

// Position is embedded by every list item. Order is optional on input and
// always set after NormalizeOrder.
type Position struct {
	Order *int `json:"order"`
}

func (p *Position) position() *Position { return p }

type positioned interface {
	position() *Position
}

type orderKey struct {
	key   int
	index int
}

func sortKeys[T any, P interface {
	*T
	positioned
}](items []T) []orderKey {
	keys := make([]orderKey, len(items))
	for i := range items {
		k := i
		if o := P(&items[i]).position().Order; o != nil {
			k = *o
		}
		keys[i] = orderKey{key: k, index: i}
	}
	slices.SortStableFunc(keys, func(a, b orderKey) int {
		return cmp.Compare(a.key, b.key)
	})
	return keys
}

func reorder[T any](items []T, keys []orderKey) {
	sorted := make([]T, len(items))
	for i, k := range keys {
		sorted[i] = items[k.index]
	}
	copy(items, sorted)
}

// SortByOrder sorts items by order ascending. Items without an order sort
// by their position, and ties keep their input order.
func SortByOrder[T any, P interface {
	*T
	positioned
}](items []T) {
	reorder(items, sortKeys[T, P](items))
}

// NormalizeOrder sorts like SortByOrder and then renumbers the items
// 0..n-1, so stored orders are always dense.
func NormalizeOrder[T any, P interface {
	*T
	positioned
}](items []T) {
	SortByOrder[T, P](items)
	for i := range items {
		n := i
		P(&items[i]).position().Order = &n
	}
}

func intPtr(n int) *int { return &n }
