package services

import (
	"slices"
	"time"
)

// SortByUrgency orders items so that those without a transport come first, followed by
// ascending scheduled time. The sort is stable, so the incoming order (normally newest
// first) is kept among equal keys.
func SortByUrgency[T any](items []T, scheduledAt func(T) *time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, tb := scheduledAt(a), scheduledAt(b)
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return -1
		case tb == nil:
			return 1
		default:
			return ta.Compare(*tb)
		}
	})
}
