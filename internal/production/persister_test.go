package production

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/comalice/navsyncx/internal/core"
)

func sampleSnapshot(id string) core.RouterSnapshot {
	return core.RouterSnapshot{
		ProgramID: id,
		Reported:  "/list?page=2#top",
		Expected:  1,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}

func TestJSONPersisterRoundTrip(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	want := sampleSnapshot("prog-json")
	if err := p.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := p.Load(ctx, "prog-json")
	if err != nil {
		t.Fatal(err)
	}
	if got.Reported != want.Reported || got.Expected != want.Expected {
		t.Errorf("loaded = %+v, want %+v", got, want)
	}
}

func TestJSONPersisterMissing(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Load(context.Background(), "nope")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestYAMLPersisterRoundTrip(t *testing.T) {
	p, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	want := sampleSnapshot("prog-yaml")
	if err := p.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := p.Load(ctx, "prog-yaml")
	if err != nil {
		t.Fatal(err)
	}
	if got.Reported != want.Reported || got.Expected != want.Expected {
		t.Errorf("loaded = %+v, want %+v", got, want)
	}

	restored := core.RestoreRouterState(got)
	if restored.Expected != 1 || restored.Reported.String() != "/list?page=2#top" {
		t.Errorf("restored router state = %+v", restored)
	}
}
