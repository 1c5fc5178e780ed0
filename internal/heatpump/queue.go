package heatpump

import "sort"

// WriteEntry is one pending parameter write.
type WriteEntry struct {
	Index int
	Value int
}

// WriteQueue holds pending index→value writes with last-write-wins
// semantics. Flush order is ascending by index so repeated cycles send
// identical frame sequences for identical queue contents.
type WriteQueue struct {
	entries map[int]int
}

// Set queues a write for index, replacing any previous value for it.
func (q *WriteQueue) Set(index, value int) {
	if q.entries == nil {
		q.entries = make(map[int]int)
	}
	q.entries[index] = value
}

// Len returns the number of distinct indices queued.
func (q *WriteQueue) Len() int {
	return len(q.entries)
}

// Snapshot returns the queued entries in ascending index order.
func (q *WriteQueue) Snapshot() []WriteEntry {
	out := make([]WriteEntry, 0, len(q.entries))
	for index, value := range q.entries {
		out = append(out, WriteEntry{Index: index, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Clear discards all queued entries.
func (q *WriteQueue) Clear() {
	q.entries = nil
}
