package navsyncx

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/comalice/navsyncx/internal/primitives"
)

// Legacy string-prefix builders. Older embedders describe a URL change as a
// raw pre-encoded string whose leading character signals scope: "/" replaces
// the whole path, "?" changes only the query, "#" only the fragment. This is
// a compatibility adapter in front of the typed URLChange variants; the
// engine itself never sniffs strings.

// NewURL converts a raw prefixed string into a typed URLChange.
func NewURL(raw string, entry HistoryEntry) (URLChange, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty url change")
	}
	switch raw[0] {
	case '/':
		loc := primitives.ParseLocation(raw)
		return PathChange{Path: loc.Path, Query: loc.Query, Fragment: loc.Fragment, Entry: entry}, nil
	case '?':
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse query change %q: %w", raw, err)
		}
		q := map[string]string{}
		for k, vs := range u.Query() {
			if len(vs) > 0 {
				q[k] = vs[0]
			}
		}
		return QueryChange{Query: q, Fragment: u.Fragment, Entry: entry}, nil
	case '#':
		frag, err := url.QueryUnescape(raw[1:])
		if err != nil {
			frag = raw[1:]
		}
		return FragmentChange{Fragment: frag, Entry: entry}, nil
	default:
		return nil, fmt.Errorf("url change %q must start with '/', '?' or '#'", raw)
	}
}

// MustNewURL is NewURL for compile-time-constant inputs; panics on a bad prefix.
func MustNewURL(raw string, entry HistoryEntry) URLChange {
	c, err := NewURL(raw, entry)
	if err != nil {
		panic(err)
	}
	return c
}

// PathURL builds a full-path change from decoded segments.
func PathURL(entry HistoryEntry, segments ...string) PathChange {
	return PathChange{Path: segments, Entry: entry}
}

// QueryURL builds a query-only change.
func QueryURL(entry HistoryEntry, query map[string]string) QueryChange {
	return QueryChange{Query: query, Entry: entry}
}

// FragmentURL builds a fragment-only change.
func FragmentURL(entry HistoryEntry, fragment string) FragmentChange {
	return FragmentChange{Fragment: strings.TrimPrefix(fragment, "#"), Entry: entry}
}
