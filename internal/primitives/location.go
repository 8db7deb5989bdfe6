package primitives

import (
	"maps"
	"net/url"
	"strings"
)

// Location is the immutable parsed representation of a URL: ordered path
// segments, a query mapping, and an optional fragment. Scheme, host and port
// are deliberately absent; two Locations that differ only in how they were
// percent-encoded are equal.
//
// Fields are exported for read-only use. Consumers MUST NOT modify them after
// construction; use Apply to derive a new Location.
type Location struct {
	Path     []string
	Query    map[string]string
	Fragment string
}

// ParseLocation parses a raw URL string ("/list?page=2#top") into a Location.
// Total: malformed input degrades to the closest parseable Location rather
// than failing. Only path, query and fragment are retained.
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		// Strip the offending parts ourselves; a raw string is still a path.
		u = &url.URL{Path: raw}
	}

	loc := Location{
		Path:     splitPath(u.Path),
		Fragment: u.Fragment,
	}

	q := u.Query()
	if len(q) > 0 {
		loc.Query = make(map[string]string, len(q))
		for k, vs := range q {
			if len(vs) > 0 {
				loc.Query[k] = vs[0]
			} else {
				loc.Query[k] = ""
			}
		}
	}
	return loc
}

// splitPath breaks a decoded URL path into segments. Leading, trailing and
// duplicate slashes produce no empty segments; "/" parses to nil.
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// String serializes the Location back to a rooted URL string. Round-trips
// through ParseLocation for comparison purposes; byte-identity with the
// original raw string is not guaranteed (query keys are emitted sorted).
func (l Location) String() string {
	u := url.URL{Path: "/" + strings.Join(l.Path, "/")}

	if len(l.Query) > 0 {
		vals := url.Values{}
		for k, v := range l.Query {
			vals.Set(k, v)
		}
		u.RawQuery = vals.Encode()
	}
	u.Fragment = l.Fragment
	return u.String()
}

// Eq reports whether two Locations are equal: same path segments in order,
// same query pairs (order irrelevant), same fragment. This is the only
// equality the router ever consults.
func (l Location) Eq(o Location) bool {
	if len(l.Path) != len(o.Path) {
		return false
	}
	for i := range l.Path {
		if l.Path[i] != o.Path[i] {
			return false
		}
	}
	if len(l.Query) != len(o.Query) {
		return false
	}
	for k, v := range l.Query {
		if ov, ok := o.Query[k]; !ok || ov != v {
			return false
		}
	}
	return l.Fragment == o.Fragment
}

// clone deep-copies the Location so derived values never alias the base.
func (l Location) clone() Location {
	c := Location{Fragment: l.Fragment}
	if l.Path != nil {
		c.Path = append([]string(nil), l.Path...)
	}
	if l.Query != nil {
		c.Query = maps.Clone(l.Query)
	}
	return c
}
