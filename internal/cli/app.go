package cli

import (
	"strings"

	"github.com/comalice/navsyncx"
)

// scriptApp is the built-in application traces are replayed against. Its
// messages are plain strings of the form "go:/some/path", so any trace with
// the string codec can drive it.
type scriptApp struct{}

type scriptState struct {
	route string
}

func (scriptApp) Init() (scriptState, any) { return scriptState{route: "/"}, nil }

func (scriptApp) Update(m string, s scriptState) (scriptState, any) {
	if strings.HasPrefix(m, "go:") {
		s.route = strings.TrimPrefix(m, "go:")
	}
	return s, nil
}

func (scriptApp) Delta2URL(prev, next scriptState) (navsyncx.URLChange, bool) {
	if prev.route == next.route {
		return nil, false
	}
	loc := navsyncx.ParseLocation(next.route)
	return navsyncx.PathChange{Path: loc.Path, Query: loc.Query, Fragment: loc.Fragment, Entry: navsyncx.NewEntry}, true
}

func (scriptApp) Location2Messages(loc navsyncx.Location) []string {
	return []string{"go:" + loc.String()}
}
