package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/comalice/navsyncx"
	"github.com/comalice/navsyncx/internal/core"
	"github.com/comalice/navsyncx/internal/extensibility"
	"github.com/comalice/navsyncx/internal/production"
)

// galleryApp pages through a photo gallery, mirroring the page into the URL.
type galleryApp struct{}

type galleryState struct {
	Page int
}

type galleryMsg struct {
	SetPage int
}

func (galleryApp) Init() (galleryState, any) { return galleryState{Page: 1}, nil }

func (galleryApp) Update(m galleryMsg, s galleryState) (galleryState, any) {
	if m.SetPage > 0 {
		s.Page = m.SetPage
	}
	return s, nil
}

func (galleryApp) Delta2URL(prev, next galleryState) (navsyncx.URLChange, bool) {
	if prev.Page == next.Page {
		return nil, false
	}
	return navsyncx.PathURL(navsyncx.NewEntry, "page", strconv.Itoa(next.Page)), true
}

func (galleryApp) Location2Messages(loc navsyncx.Location) []galleryMsg {
	if len(loc.Path) == 2 && loc.Path[0] == "page" {
		if n, err := strconv.Atoi(loc.Path[1]); err == nil {
			return []galleryMsg{{SetPage: n}}
		}
	}
	return []galleryMsg{{SetPage: 1}}
}

func main() {
	dir, err := os.MkdirTemp("", "navsyncx-demo")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	persister, err := production.NewJSONPersister(dir)
	if err != nil {
		panic(err)
	}

	journal, err := production.NewSQLiteJournal(filepath.Join(dir, "nav.db"))
	if err != nil {
		panic(err)
	}

	history := extensibility.NewMemoryHistory("/")

	prog := core.NewRuntime[galleryState, galleryMsg]("demo", galleryApp{}, navsyncx.ParseLocation("/"),
		core.WithNavigator[galleryState, galleryMsg](history),
		core.WithSource[galleryState, galleryMsg](history),
		core.WithPersister[galleryState, galleryMsg](persister),
		core.WithPublisher[galleryState, galleryMsg](journal),
	)

	if err := prog.Start(context.Background()); err != nil {
		panic(err)
	}
	defer prog.Stop()

	fmt.Println("--- forward: application drives the address bar ---")
	for page := 2; page <= 4; page++ {
		prog.SendMsg(galleryMsg{SetPage: page})
		time.Sleep(20 * time.Millisecond)
		fmt.Printf("page %d -> address bar %s\n", prog.AppState().Page, history.Current())
	}

	fmt.Println("--- reverse: browser back drives the application ---")
	for history.Back() {
		time.Sleep(20 * time.Millisecond)
		fmt.Printf("address bar %s -> page %d\n", history.Current(), prog.AppState().Page)
	}

	time.Sleep(50 * time.Millisecond) // let fire-and-forget publishes land
	entries, err := journal.Entries(context.Background(), "demo")
	if err != nil {
		panic(err)
	}
	fmt.Println("--- journal ---")
	for _, e := range entries {
		fmt.Printf("%s %-8s %s %s\n", e.ID, e.Kind, e.URL, e.Entry)
	}

	journal.Close()
}
