// Package serialize renders a value.Value tree back to text in the
// several styles named by §4.3: pretty/compact/sorted/colored/tabbed/
// relaxed, combined freely via a bitmask.
package serialize

// Flags is the bitmask of formatting options accepted by Serialize.
type Flags uint16

const (
	// Pretty inserts line breaks and indentation around container
	// children.
	Pretty Flags = 1 << iota
	// CompactArray keeps array elements on one line even when Pretty is
	// set.
	CompactArray
	// Sorted iterates objects in key-sorted order instead of insertion
	// order.
	Sorted
	// EscapeSlash emits '/' as '\/' in strings.
	EscapeSlash
	// Tabs uses one tab per indent level instead of four spaces.
	Tabs
	// Relaxed emits identifier-like object keys without surrounding
	// quotes, unless the key spells a reserved word.
	Relaxed
	// Color emits ANSI color escapes around tokens. The result is never
	// valid JSON and must not be fed back to parse.
	Color
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }
