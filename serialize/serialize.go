package serialize

import (
	"strings"

	"github.com/fatih/color"

	"github.com/kaptinlin/ujson-tools/value"
)

var (
	colorPunct = color.New(color.FgWhite)
	colorKey   = color.New(color.FgMagenta)
	colorStr   = color.New(color.FgGreen)
	colorNum   = color.New(color.FgCyan)
	colorLit   = color.New(color.FgYellow)
)

// Serialize renders v as text under the given Flags.
func Serialize(v value.Value, flags Flags) string {
	var b strings.Builder
	w := &writer{b: &b, flags: flags}
	w.writeValue(v, 0)
	return b.String()
}

type writer struct {
	b     *strings.Builder
	flags Flags
}

func (w *writer) indent(depth int) {
	if !w.flags.has(Pretty) {
		return
	}
	if w.flags.has(Tabs) {
		w.b.WriteString(strings.Repeat("\t", depth))
		return
	}
	w.b.WriteString(strings.Repeat("    ", depth))
}

func (w *writer) punct(s string) {
	if w.flags.has(Color) {
		w.b.WriteString(colorPunct.Sprint(s))
		return
	}
	w.b.WriteString(s)
}

func (w *writer) writeValue(v value.Value, depth int) {
	switch v.Kind() {
	case value.Invalid:
		// never serialized
		return
	case value.Null:
		w.writeLiteral("null")
	case value.Boolean:
		if v.Bool() {
			w.writeLiteral("true")
		} else {
			w.writeLiteral("false")
		}
	case value.Number:
		n := v.Num()
		if n.IsNaNOrInf() {
			w.writeLiteral("null")
			return
		}
		if w.flags.has(Color) {
			w.b.WriteString(colorNum.Sprint(n.String()))
		} else {
			w.b.WriteString(n.String())
		}
	case value.String:
		w.writeString(v.Str())
	case value.Array:
		w.writeArray(v.Arr(), depth)
	case value.Object:
		w.writeObject(v.ObjVal(), depth)
	}
}

func (w *writer) writeLiteral(s string) {
	if w.flags.has(Color) {
		w.b.WriteString(colorLit.Sprint(s))
		return
	}
	w.b.WriteString(s)
}

func (w *writer) writeString(s string) {
	body := escapeString(s, w.flags.has(EscapeSlash))
	if w.flags.has(Color) {
		w.b.WriteString(colorStr.Sprint(`"` + body + `"`))
		return
	}
	w.b.WriteByte('"')
	w.b.WriteString(body)
	w.b.WriteByte('"')
}

func isScalarKind(k value.Kind) bool {
	switch k {
	case value.Null, value.Boolean, value.Number, value.String:
		return true
	default:
		return false
	}
}

func (w *writer) writeArray(elems []value.Value, depth int) {
	if len(elems) == 0 {
		w.punct("[]")
		return
	}

	oneLine := w.flags.has(CompactArray) ||
		!w.flags.has(Pretty) ||
		(len(elems) == 1 && isScalarKind(elems[0].Kind()))

	w.punct("[")
	if oneLine {
		for i, e := range elems {
			if i > 0 {
				w.punct(", ")
			}
			w.writeValue(e, depth+1)
		}
		w.punct("]")
		return
	}

	for i, e := range elems {
		if i > 0 {
			w.punct(",")
		}
		w.b.WriteByte('\n')
		w.indent(depth + 1)
		w.writeValue(e, depth+1)
	}
	w.b.WriteByte('\n')
	w.indent(depth)
	w.punct("]")
}

func (w *writer) writeObject(o *value.Obj, depth int) {
	type kv struct {
		key string
		val value.Value
	}
	var members []kv
	if w.flags.has(Sorted) {
		for _, p := range o.SortedPairs() {
			members = append(members, kv{p.Key, p.Value})
		}
	} else {
		o.Range(func(key string, val value.Value) bool {
			members = append(members, kv{key, val})
			return true
		})
	}

	if len(members) == 0 {
		w.punct("{}")
		return
	}

	oneLine := !w.flags.has(Pretty) ||
		(len(members) == 1 && isScalarKind(members[0].val.Kind()))

	w.punct("{")
	if oneLine {
		for i, m := range members {
			if i > 0 {
				w.punct(", ")
			}
			w.writeKey(m.key)
			w.punct(": ")
			w.writeValue(m.val, depth+1)
		}
		w.punct("}")
		return
	}

	for i, m := range members {
		if i > 0 {
			w.punct(",")
		}
		w.b.WriteByte('\n')
		w.indent(depth + 1)
		w.writeKey(m.key)
		w.punct(": ")
		w.writeValue(m.val, depth+1)
	}
	w.b.WriteByte('\n')
	w.indent(depth)
	w.punct("}")
}

func (w *writer) writeKey(key string) {
	if w.flags.has(Relaxed) && isIdentifier(key) {
		if w.flags.has(Color) {
			w.b.WriteString(colorKey.Sprint(key))
			return
		}
		w.b.WriteString(key)
		return
	}
	if w.flags.has(Color) {
		body := escapeString(key, w.flags.has(EscapeSlash))
		w.b.WriteString(colorKey.Sprint(`"` + body + `"`))
		return
	}
	w.writeString(key)
}
