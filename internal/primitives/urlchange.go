package primitives

import "maps"

// HistoryEntry selects the browser-history semantics of a location write.
type HistoryEntry int

const (
	// NewEntry pushes a new, navigable history item.
	NewEntry HistoryEntry = iota
	// ModifyEntry overwrites the current history item in place.
	ModifyEntry
)

// String returns the push/replace wire name of the entry kind.
func (e HistoryEntry) String() string {
	if e == ModifyEntry {
		return "replace"
	}
	return "push"
}

// URLChange describes a desired new location plus a history-entry kind.
// It is a closed sum over three shapes: PathChange, QueryChange and
// FragmentChange. Each shape inherits a different slice of the base
// Location when applied (see Apply).
type URLChange interface {
	// HistoryEntry reports whether applying this change pushes a new
	// history entry or modifies the current one.
	HistoryEntry() HistoryEntry

	// apply derives the target Location from a base. Unexported so the sum
	// stays closed; invalid shape combinations are unrepresentable.
	apply(base Location) Location
}

// PathChange replaces path, query and fragment wholesale. An absent Query or
// Fragment means absent in the result, not inherited from the base.
type PathChange struct {
	Path     []string
	Query    map[string]string
	Fragment string
	Entry    HistoryEntry
}

// QueryChange keeps the base path, sets the query, and optionally sets the
// fragment.
type QueryChange struct {
	Query    map[string]string
	Fragment string
	Entry    HistoryEntry
}

// FragmentChange keeps the base path and query and sets only the fragment.
type FragmentChange struct {
	Fragment string
	Entry    HistoryEntry
}

func (c PathChange) HistoryEntry() HistoryEntry     { return c.Entry }
func (c QueryChange) HistoryEntry() HistoryEntry    { return c.Entry }
func (c FragmentChange) HistoryEntry() HistoryEntry { return c.Entry }

func (c PathChange) apply(Location) Location {
	loc := Location{Fragment: c.Fragment}
	if c.Path != nil {
		loc.Path = append([]string(nil), c.Path...)
	}
	if len(c.Query) > 0 {
		loc.Query = maps.Clone(c.Query)
	}
	return loc
}

func (c QueryChange) apply(base Location) Location {
	loc := base.clone()
	loc.Query = nil
	if len(c.Query) > 0 {
		loc.Query = maps.Clone(c.Query)
	}
	loc.Fragment = c.Fragment
	return loc
}

func (c FragmentChange) apply(base Location) Location {
	loc := base.clone()
	loc.Fragment = c.Fragment
	return loc
}

// Apply derives the target Location of a URLChange against a base. Pure and
// total: the base is never mutated and every change shape produces a
// well-formed Location.
func Apply(base Location, change URLChange) Location {
	return change.apply(base)
}
