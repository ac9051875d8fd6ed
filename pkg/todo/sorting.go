package todo

import (
	"sort"
	"time"

	"daylog/pkg/dateparse"
	"daylog/pkg/deadline"
)

// Order returns the display order of tasks without touching the input:
// in-progress tasks first, dated before undated, earliest due date first;
// done tasks follow in their stored order. Ties keep stored order.
func Order(tasks []Task, today time.Time) []Task {
	sorted := cloneAll(tasks)

	keys := make([]sortKey, len(sorted))
	for i, t := range sorted {
		keys[i] = keyFor(t, today)
	}
	idx := make([]int, len(sorted))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]].less(keys[idx[b]])
	})

	out := make([]Task, len(sorted))
	for i, j := range idx {
		out[i] = sorted[j]
	}
	return out
}

type sortKey struct {
	done   bool
	dated  bool
	offset int
}

func keyFor(t Task, today time.Time) sortKey {
	k := sortKey{done: t.Done()}
	if t.DueDate == "" {
		return k
	}
	due, err := dateparse.ParseDate(t.DueDate)
	if err != nil {
		return k
	}
	k.dated = true
	k.offset = deadline.DaysBetween(today, due)
	return k
}

func (k sortKey) less(o sortKey) bool {
	if k.done != o.done {
		return !k.done
	}
	if k.done {
		return false
	}
	if k.dated != o.dated {
		return k.dated
	}
	return k.dated && k.offset < o.offset
}
