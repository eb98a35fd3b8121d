package value

import "sort"

// Equal reports whether a and b are semantically equal. Object member
// equality is defined over the sorted view: same size, and each (key,
// value) pair equal under recursive equality — insertion order never
// affects equality. Array equality is positional.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Invalid, Null:
		return true
	case Boolean:
		return a.b == b.b
	case String:
		return a.str == b.str
	case Number:
		return a.num.Equal(b.num)
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		return objEqual(a.obj, b.obj)
	default:
		return false
	}
}

func objEqual(a, b *Obj) bool {
	ap := a.SortedPairs()
	bp := b.SortedPairs()
	if len(ap) != len(bp) {
		return false
	}
	// Order duplicate-key runs by value so their insertion order does not
	// affect the pairwise comparison.
	byKeyThenValue := func(p []Pair) {
		sort.SliceStable(p, func(i, j int) bool {
			if p[i].Key != p[j].Key {
				return p[i].Key < p[j].Key
			}
			return Less(p[i].Value, p[j].Value)
		})
	}
	byKeyThenValue(ap)
	byKeyThenValue(bp)
	for i := range ap {
		if ap[i].Key != bp[i].Key || !Equal(ap[i].Value, bp[i].Value) {
			return false
		}
	}
	return true
}

// Less defines the natural lexicographic ordering used by the sorted
// multi-map view: Kind order first (Invalid < Null < Boolean < Number <
// String < Array < Object), then a type-specific comparison.
func Less(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case Boolean:
		return !a.b && b.b
	case Number:
		return a.num.Cmp(b.num) < 0
	case String:
		return a.str < b.str
	case Array:
		n := len(a.arr)
		if len(b.arr) < n {
			n = len(b.arr)
		}
		for i := 0; i < n; i++ {
			if Equal(a.arr[i], b.arr[i]) {
				continue
			}
			return Less(a.arr[i], b.arr[i])
		}
		return len(a.arr) < len(b.arr)
	case Object:
		ap := a.obj.SortedPairs()
		bp := b.obj.SortedPairs()
		n := len(ap)
		if len(bp) < n {
			n = len(bp)
		}
		for i := 0; i < n; i++ {
			if ap[i].Key != bp[i].Key {
				return ap[i].Key < bp[i].Key
			}
			if Equal(ap[i].Value, bp[i].Value) {
				continue
			}
			return Less(ap[i].Value, bp[i].Value)
		}
		return len(ap) < len(bp)
	default:
		return false
	}
}
