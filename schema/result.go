package schema

import (
	"github.com/kaptinlin/go-i18n"

	"github.com/kaptinlin/ujson-tools/value"
)

// EvalUnit is the Go-native form of one output unit (§3.5): a node in
// the hierarchical validation result, carrying either a successful
// annotation or a failure message at this frame, plus the child units
// produced by recursing into subschemas.
type EvalUnit struct {
	Valid                   bool
	KeywordLocation         string
	InstanceLocation        string
	AbsoluteKeywordLocation string
	Annotation              any
	HasAnnotation           bool
	ErrorMessage            string
	HasError                bool
	// ErrorCode and ErrorParams, when ErrorCode is non-empty, name a
	// message-catalog key and its substitution parameters for Localize;
	// not every failing unit sets these (only the validation-vocabulary
	// keywords that produce a single, parameterizable failure reason do).
	ErrorCode   string
	ErrorParams map[string]any
	Children    []*EvalUnit
}

func unitFor(ctx *Context, valid bool) *EvalUnit {
	return &EvalUnit{
		Valid:                   valid,
		KeywordLocation:         ctx.KeywordPath,
		InstanceLocation:        ctx.InstancePath,
		AbsoluteKeywordLocation: ctx.AbsoluteKeywordLocation,
	}
}

func validUnit(ctx *Context, annotation any) *EvalUnit {
	u := unitFor(ctx, true)
	if annotation != nil {
		u.Annotation = annotation
		u.HasAnnotation = true
	}
	return u
}

func invalidUnit(ctx *Context, message string) *EvalUnit {
	u := unitFor(ctx, false)
	u.ErrorMessage = message
	u.HasError = true
	return u
}

// invalidUnitCoded is invalidUnit plus a message-catalog key and
// parameters, for keywords whose failure reason Localize can render in
// another locale (§4.6's localized-error-message ambient concern).
func invalidUnitCoded(ctx *Context, message, code string, params map[string]any) *EvalUnit {
	u := invalidUnit(ctx, message)
	u.ErrorCode = code
	u.ErrorParams = params
	return u
}

// Localize renders u's failure reason through localizer when localizer is
// non-nil and u carries an ErrorCode, and returns the plain-English
// ErrorMessage otherwise. A valid unit yields "". The text localizer.Get
// returns is passed through as is; there is no fallback to ErrorMessage
// when the code has no catalog entry for localizer's locale.
func (u *EvalUnit) Localize(localizer *i18n.Localizer) string {
	if u.Valid {
		return ""
	}
	if localizer != nil && u.ErrorCode != "" {
		return localizer.Get(u.ErrorCode, i18n.Vars(u.ErrorParams))
	}
	return u.ErrorMessage
}

func branchUnit(ctx *Context, children []*EvalUnit) *EvalUnit {
	valid := true
	for _, c := range children {
		if c != nil && !c.Valid {
			valid = false
			break
		}
	}
	u := unitFor(ctx, valid)
	u.Children = children
	return u
}

// ToValue renders the output unit as a value.Value object per §3.5's
// fixed members.
func (u *EvalUnit) ToValue() value.Value {
	obj := value.NewObject()
	o := obj.ObjVal()
	o.Set("valid", value.NewBool(u.Valid))
	o.Set("keywordLocation", value.NewString(u.KeywordLocation))
	o.Set("instanceLocation", value.NewString(u.InstanceLocation))
	if u.AbsoluteKeywordLocation != "" {
		o.Set("absoluteKeywordLocation", value.NewString(u.AbsoluteKeywordLocation))
	}
	if u.HasAnnotation {
		o.Set("annotation", annotationToValue(u.Annotation))
	}
	if u.HasError {
		o.Set("error", value.NewString(u.ErrorMessage))
	}
	if len(u.Children) == 0 {
		return obj
	}
	arr := make([]value.Value, 0, len(u.Children))
	for _, c := range u.Children {
		if c != nil {
			arr = append(arr, c.ToValue())
		}
	}
	if u.Valid {
		o.Set("annotations", value.NewArray(arr...))
	} else {
		o.Set("errors", value.NewArray(arr...))
	}
	return obj
}

func annotationToValue(a any) value.Value {
	switch v := a.(type) {
	case bool:
		return value.NewBool(v)
	case int:
		return value.NewNumber(value.NewNumberFromInt64(int64(v)))
	case []string:
		elems := make([]value.Value, len(v))
		for i, s := range v {
			elems[i] = value.NewString(s)
		}
		return value.NewArray(elems...)
	case []int:
		elems := make([]value.Value, len(v))
		for i, n := range v {
			elems[i] = value.NewNumber(value.NewNumberFromInt64(int64(n)))
		}
		return value.NewArray(elems...)
	default:
		return value.NewNull()
	}
}

// collectFailures walks a (possibly deeply nested) output unit and
// returns every leaf-level failing unit, in completion order, for
// callers that want a flat error list.
func (u *EvalUnit) collectFailures() []*EvalUnit {
	if u == nil || u.Valid {
		return nil
	}
	if u.HasError {
		return []*EvalUnit{u}
	}
	var out []*EvalUnit
	for _, c := range u.Children {
		out = append(out, c.collectFailures()...)
	}
	return out
}
