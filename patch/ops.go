package patch

import (
	"strings"

	"github.com/kaptinlin/ujson-tools/pointer"
	"github.com/kaptinlin/ujson-tools/value"
)

// walk descends root along path[:len(path)-1], rebuilding array
// ancestors (which are plain slices, copy-on-write) and mutating object
// ancestors in place (Obj has pointer identity, so no rebuild needed
// there), then invokes fn with the immediate parent container and the
// final path token. fn returns the parent's replacement value (e.g. the
// same object with one member changed, or a new array). walk propagates
// that replacement back up to root.
func walk(root value.Value, path pointer.Pointer, fn func(parent value.Value, last string) (value.Value, Outcome)) (value.Value, Outcome) {
	if len(path) == 0 {
		// No container to descend into; caller handles whole-document
		// operations itself.
		return root, InvalidOp
	}
	return walkAt(root, path, fn)
}

func walkAt(cur value.Value, path pointer.Pointer, fn func(parent value.Value, last string) (value.Value, Outcome)) (value.Value, Outcome) {
	head := path[0]
	if len(path) == 1 {
		return fn(cur, head)
	}
	rest := path[1:]

	switch cur.Kind() {
	case value.Object:
		obj := cur.ObjVal()
		child, ok := obj.Get(head)
		if !ok {
			return cur, NoEnt
		}
		newChild, outcome := walkAt(child, rest, fn)
		if outcome != OK {
			return cur, outcome
		}
		obj.Set(head, newChild)
		return cur, OK
	case value.Array:
		idx, ok := pointer.IsArrayIndex(head)
		arr := cur.Arr()
		if !ok || idx < 0 || idx >= len(arr) {
			return cur, NoEnt
		}
		newChild, outcome := walkAt(arr[idx], rest, fn)
		if outcome != OK {
			return cur, outcome
		}
		newArr := make([]value.Value, len(arr))
		copy(newArr, arr)
		newArr[idx] = newChild
		return value.NewArray(newArr...), OK
	default:
		return cur, NoEnt
	}
}

func doAdd(root value.Value, path string, val value.Value) (value.Value, Outcome) {
	p, ok := parsePath(path)
	if !ok {
		return root, InvalidOp
	}
	if !val.IsValid() {
		return root, InvalidOp
	}
	if len(p) == 0 {
		// add at root replaces the entire document
		return val, OK
	}
	return walk(root, p, func(parent value.Value, last string) (value.Value, Outcome) {
		switch parent.Kind() {
		case value.Object:
			parent.ObjVal().Set(last, val)
			return parent, OK
		case value.Array:
			arr := parent.Arr()
			if pointer.IsAppendToken(last) {
				newArr := make([]value.Value, len(arr)+1)
				copy(newArr, arr)
				newArr[len(arr)] = val
				return value.NewArray(newArr...), OK
			}
			idx, ok := pointer.IsArrayIndex(last)
			if !ok || idx < 0 || idx > len(arr) {
				return parent, NoEnt
			}
			newArr := make([]value.Value, len(arr)+1)
			copy(newArr, arr[:idx])
			newArr[idx] = val
			copy(newArr[idx+1:], arr[idx:])
			return value.NewArray(newArr...), OK
		default:
			return parent, NoEnt
		}
	})
}

func doRemove(root value.Value, path string) (value.Value, Outcome) {
	p, ok := parsePath(path)
	if !ok {
		return root, InvalidOp
	}
	if len(p) == 0 {
		return root, InvalidOp
	}
	return walk(root, p, func(parent value.Value, last string) (value.Value, Outcome) {
		switch parent.Kind() {
		case value.Object:
			if !parent.ObjVal().Has(last) {
				return parent, NoEnt
			}
			parent.ObjVal().Delete(last)
			return parent, OK
		case value.Array:
			arr := parent.Arr()
			idx, ok := pointer.IsArrayIndex(last)
			if !ok || idx < 0 || idx >= len(arr) {
				return parent, NoEnt
			}
			newArr := make([]value.Value, 0, len(arr)-1)
			newArr = append(newArr, arr[:idx]...)
			newArr = append(newArr, arr[idx+1:]...)
			return value.NewArray(newArr...), OK
		default:
			return parent, NoEnt
		}
	})
}

func doReplace(root value.Value, path string, val value.Value) (value.Value, Outcome) {
	p, ok := parsePath(path)
	if !ok {
		return root, InvalidOp
	}
	if !val.IsValid() {
		return root, InvalidOp
	}
	if len(p) == 0 {
		return val, OK
	}
	return walk(root, p, func(parent value.Value, last string) (value.Value, Outcome) {
		switch parent.Kind() {
		case value.Object:
			if !parent.ObjVal().Has(last) {
				return parent, NoEnt
			}
			parent.ObjVal().Set(last, val)
			return parent, OK
		case value.Array:
			arr := parent.Arr()
			idx, ok := pointer.IsArrayIndex(last)
			if !ok || idx < 0 || idx >= len(arr) {
				return parent, NoEnt
			}
			newArr := make([]value.Value, len(arr))
			copy(newArr, arr)
			newArr[idx] = val
			return value.NewArray(newArr...), OK
		default:
			return parent, NoEnt
		}
	})
}

func doMove(root value.Value, from, path string) (value.Value, Outcome) {
	if from == path {
		return root, OK
	}
	if isStrictPrefix(from, path) {
		// moving a container into itself
		return root, InvalidOp
	}
	fp, ok := parsePath(from)
	if !ok {
		return root, InvalidOp
	}
	val := pointer.Find(root, fp)
	if !val.IsValid() {
		return root, NoEnt
	}
	afterRemove, outcome := doRemove(root, from)
	if outcome != OK {
		return root, outcome
	}
	return doAdd(afterRemove, path, val)
}

func doCopy(root value.Value, from, path string) (value.Value, Outcome) {
	fp, ok := parsePath(from)
	if !ok {
		return root, InvalidOp
	}
	val := pointer.Find(root, fp)
	if !val.IsValid() {
		return root, NoEnt
	}
	return doAdd(root, path, val.Clone())
}

// isStrictPrefix reports whether path is from plus one or more
// additional reference tokens.
func isStrictPrefix(from, path string) bool {
	if from == "" {
		return path != ""
	}
	return strings.HasPrefix(path, from+"/")
}
