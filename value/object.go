package value

import (
	"sort"
	"sync"
)

// pair is one (key, value) member of an Obj, kept in insertion order.
type pair struct {
	key string
	val Value
}

// Obj is the ordered multi-map backing a JSON object. Insertion order is
// preserved and visible through Range; Get/EqualRange/Has/Count use a side
// index for O(1) average lookup. Multiple members may share a key; Get
// returns the last inserted live one, matching "get by name" semantics.
// Structural operations are serialized under a mutex so a single Obj is
// safe under concurrent read/write from multiple goroutines, at
// whole-operation granularity: no caller observes a partially applied
// mutation. This follows the design note in §9 of the specification this
// module implements: an insertion-ordered slice plus hash index in place
// of the reference implementation's linked-list-plus-sorted-tree, with
// the sorted view built on demand for serialization and equality.
type Obj struct {
	mu      sync.RWMutex
	entries []pair
	index   map[string][]int // key -> indices into entries, insertion order
}

// NewObj returns an empty ordered multi-map.
func NewObj() *Obj {
	return &Obj{index: make(map[string][]int)}
}

// Len returns the total number of members, counting duplicates.
func (o *Obj) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Append always adds a new member, even if key already exists. This is
// how the parser builds an object when duplicate members are allowed.
func (o *Obj) Append(key string, val Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.index[key] = append(o.index[key], len(o.entries))
	o.entries = append(o.entries, pair{key: key, val: val})
}

// Set performs get-by-name upsert: if key already has a live member, the
// last one's value is replaced in place (insertion order unchanged);
// otherwise a new member is appended. This is the semantics patch add/
// replace use for object keys.
func (o *Obj) Set(key string, val Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if idxs, ok := o.index[key]; ok && len(idxs) > 0 {
		o.entries[idxs[len(idxs)-1]].val = val
		return
	}
	o.index[key] = append(o.index[key], len(o.entries))
	o.entries = append(o.entries, pair{key: key, val: val})
}

// Get returns the last-inserted live member named key.
func (o *Obj) Get(key string) (Value, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	idxs, ok := o.index[key]
	if !ok || len(idxs) == 0 {
		return Value{}, false
	}
	return o.entries[idxs[len(idxs)-1]].val, true
}

// Has reports whether key has at least one live member.
func (o *Obj) Has(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	idxs, ok := o.index[key]
	return ok && len(idxs) > 0
}

// Count returns the number of live members named key.
func (o *Obj) Count(key string) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.index[key])
}

// EqualRange returns every member named key, in insertion order.
func (o *Obj) EqualRange(key string) []Value {
	o.mu.RLock()
	defer o.mu.RUnlock()
	idxs := o.index[key]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Value, len(idxs))
	for i, idx := range idxs {
		out[i] = o.entries[idx].val
	}
	return out
}

// Delete removes every member named key and reports how many were
// removed.
func (o *Obj) Delete(key string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.index[key]; !ok {
		return 0
	}
	kept := o.entries[:0:0]
	removed := 0
	for _, e := range o.entries {
		if e.key == key {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	o.entries = kept
	o.rebuildIndex()
	return removed
}

// DeleteAt removes the member at insertion-order position i, for callers
// that address members positionally (e.g. "remove only the first
// duplicate"). The patch engine removes object members by key, with
// Delete.
func (o *Obj) DeleteAt(i int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.entries) {
		return false
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	o.rebuildIndex()
	return true
}

func (o *Obj) rebuildIndex() {
	o.index = make(map[string][]int, len(o.index))
	for i, e := range o.entries {
		o.index[e.key] = append(o.index[e.key], i)
	}
}

// Range calls fn for every member in insertion order, including
// duplicates. Iteration stops early if fn returns false. Range holds the
// read lock only while it reads the member list; fn is called without
// the lock held.
func (o *Obj) Range(fn func(key string, val Value) bool) {
	o.mu.RLock()
	entries := o.entries
	o.mu.RUnlock()
	for _, e := range entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Keys returns the unique member names in the order each first appeared.
func (o *Obj) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	seen := make(map[string]bool, len(o.index))
	out := make([]string, 0, len(o.index))
	for _, e := range o.entries {
		if !seen[e.key] {
			seen[e.key] = true
			out = append(out, e.key)
		}
	}
	return out
}

// SortedPairs returns a snapshot of all members sorted by key; within a
// run of equal keys, insertion order is preserved (stable sort), matching
// "values compared by their natural order within equal-key runs" loosely
// — value ordering for equal keys is covered by Less/Equal instead of
// this accessor, which callers needing the compiled ordering should use.
func (o *Obj) SortedPairs() []Pair {
	o.mu.RLock()
	entries := make([]pair, len(o.entries))
	copy(entries, o.entries)
	o.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	out := make([]Pair, len(entries))
	for i, e := range entries {
		out[i] = Pair{Key: e.key, Value: e.val}
	}
	return out
}

// Pair is an exported (key, value) member, used by SortedRange and
// SortedPairs.
type Pair struct {
	Key   string
	Value Value
}

// SortedRange calls fn for every member in key-sorted order.
func (o *Obj) SortedRange(fn func(key string, val Value) bool) {
	for _, p := range o.SortedPairs() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Clone performs a deep copy of o.
func (o *Obj) Clone() *Obj {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := &Obj{
		entries: make([]pair, len(o.entries)),
		index:   make(map[string][]int, len(o.index)),
	}
	for i, e := range o.entries {
		out.entries[i] = pair{key: e.key, val: e.val.Clone()}
	}
	for k, v := range o.index {
		idxs := make([]int, len(v))
		copy(idxs, v)
		out.index[k] = idxs
	}
	return out
}
