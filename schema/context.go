package schema

import "strings"

// DynamicScope is the stack of schemas entered so far along the current
// evaluation path, oldest (outermost) first. $dynamicRef consults it to
// implement the "outermost dynamic anchor wins" rule.
type DynamicScope struct {
	schemas []*Schema
}

func newDynamicScope() *DynamicScope { return &DynamicScope{} }

func (d *DynamicScope) push(s *Schema) *DynamicScope {
	out := &DynamicScope{schemas: make([]*Schema, len(d.schemas)+1)}
	copy(out.schemas, d.schemas)
	out.schemas[len(d.schemas)] = s
	return out
}

// lookupDynamicAnchor scans from the outermost frame inward and returns
// the first schema whose own $dynamicAnchor, resolved within its base
// URI, matches name.
func (d *DynamicScope) lookupDynamicAnchor(name string) *Schema {
	for _, s := range d.schemas {
		if s.dynamicAnchor == name {
			if target, ok := s.compiler.dynamicAnchors[s.baseURI+"#"+name]; ok {
				return target
			}
		}
	}
	return nil
}

// Context is the evaluator's stack frame (§3.5): the base URI and
// dynamic scope in effect, the evaluation path built so far (for
// keywordLocation, including any $ref/$dynamicRef hops), the instance
// path (for instanceLocation), and whether fast-fail is enabled.
type Context struct {
	Parent                  *Context
	BaseURI                 string
	KeywordPath             string
	InstancePath            string
	AbsoluteKeywordLocation string // set only when entered through $ref/$dynamicRef
	FastFail                bool
	Scope                   *DynamicScope
	RefCallback             InvalidRefCallback
}

// rootContext starts evaluation of a top-level Schema::validate call.
func rootContext(fastFail bool, cb InvalidRefCallback) *Context {
	return &Context{KeywordPath: "", InstancePath: "", FastFail: fastFail, Scope: newDynamicScope(), RefCallback: cb}
}

// child derives a context for descending into a subschema reached via
// keyword (plus optional index/name segments) at the given instance
// path suffix, without crossing a $ref.
func (c *Context) child(keywordSegs []string, instanceSegs []string) *Context {
	kp := c.KeywordPath
	for _, seg := range keywordSegs {
		kp += "/" + seg
	}
	ip := c.InstancePath
	for _, seg := range instanceSegs {
		ip += "/" + seg
	}
	return &Context{Parent: c, BaseURI: c.BaseURI, KeywordPath: kp, InstancePath: ip, FastFail: c.FastFail, Scope: c.Scope, RefCallback: c.RefCallback}
}

// viaRef derives a context for following $ref/$dynamicRef into target,
// recording the absolute keyword location the reference landed on (the
// target's base URI plus its pointer within the nearest enclosing $id
// resource) and pushing target onto the dynamic scope.
func (c *Context) viaRef(keyword string, target *Schema) *Context {
	kp := c.KeywordPath + "/" + keyword
	res := target
	for res.id == "" && res.parent != nil {
		res = res.parent
	}
	return &Context{
		Parent:                  c,
		BaseURI:                 target.baseURI,
		KeywordPath:             kp,
		InstancePath:            c.InstancePath,
		AbsoluteKeywordLocation: target.baseURI + "#" + strings.TrimPrefix(target.refPath, res.refPath),
		FastFail:                c.FastFail,
		Scope:                   c.Scope.push(target),
		RefCallback:             c.RefCallback,
	}
}
