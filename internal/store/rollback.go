package store

import (
	"slices"

	"github.com/yukikurage/taskflow/internal/models"
)

// removal is an entry taken out of a local list together with its neighbours at the time
type removal[T any] struct {
	item  T
	index int
	prev  *uint64
	next  *uint64
}

// takeOut removes every item matched by drop and returns what was removed, in list order
func takeOut[T any](list []T, drop func(T) bool, idOf func(T) uint64) ([]T, []removal[T]) {
	var removed []removal[T]
	kept := make([]T, 0, len(list))
	for i, item := range list {
		if !drop(item) {
			kept = append(kept, item)
			continue
		}
		r := removal[T]{item: item, index: i}
		if i > 0 {
			id := idOf(list[i-1])
			r.prev = &id
		}
		if i+1 < len(list) {
			id := idOf(list[i+1])
			r.next = &id
		}
		removed = append(removed, r)
	}
	return kept, removed
}

// putBack re-inserts removed items after their old predecessor, or before their
// old successor, or at their old index. Items already listed again are skipped.
func putBack[T any](list []T, removed []removal[T], idOf func(T) uint64) []T {
	find := func(id uint64) int {
		return slices.IndexFunc(list, func(item T) bool { return idOf(item) == id })
	}

	for _, r := range removed {
		if find(idOf(r.item)) >= 0 {
			continue
		}

		at := min(r.index, len(list))
		if r.prev != nil {
			if i := find(*r.prev); i >= 0 {
				at = i + 1
			}
		} else if r.next != nil {
			if i := find(*r.next); i >= 0 {
				at = i
			}
		}
		list = slices.Insert(list, at, r.item)
	}
	return list
}

// restoreOne puts prev back in place of the item with the same ID, if it is still listed
func restoreOne[T any](list []T, prev T, idOf func(T) uint64) {
	id := idOf(prev)
	if i := slices.IndexFunc(list, func(item T) bool { return idOf(item) == id }); i >= 0 {
		list[i] = prev
	}
}

func taskID(t models.Task) uint64 { return t.ID }

func projectID(p models.Project) uint64 { return p.ID }
