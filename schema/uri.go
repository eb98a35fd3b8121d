package schema

import (
	"net/url"
	"path"
	"strings"
)

// defaultBaseURI is assigned to a root schema that carries no $id, per
// §4.6's URI resolution rule.
const defaultBaseURI = "xri://root-schema"

// dialectURI is the only $schema value this evaluator accepts.
const dialectURI = "https://json-schema.org/draft/2020-12/schema"

// isAbsoluteURI reports whether s parses as a URI with a scheme.
func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// resolveURI resolves relative against base per RFC 3986. If relative is
// already absolute it is returned unchanged.
func resolveURI(base, relative string) string {
	if relative == "" {
		return base
	}
	if isAbsoluteURI(relative) {
		return relative
	}
	b, err := url.Parse(base)
	if err != nil {
		return relative
	}
	r, err := url.Parse(relative)
	if err != nil {
		return relative
	}
	return b.ResolveReference(r).String()
}

// splitFragment separates a reference into its base-URI and fragment
// parts ("" fragment if ref has none).
func splitFragment(ref string) (baseURI, fragment string) {
	i := strings.IndexByte(ref, '#')
	if i < 0 {
		return ref, ""
	}
	frag, err := url.PathUnescape(ref[i+1:])
	if err != nil {
		frag = ref[i+1:]
	}
	return ref[:i], frag
}

// idHasFragment reports whether an $id value carries a non-empty
// fragment, which §4.6 rejects.
func idHasFragment(id string) bool {
	_, frag := splitFragment(id)
	return frag != ""
}

// dirOf returns the directory part of an absolute URI, ending in a
// slash.
func dirOf(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	if strings.HasSuffix(parsed.Path, "/") {
		return parsed.String()
	}
	parsed.Path = path.Dir(parsed.Path)
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	return parsed.String()
}
