package navsyncx

import (
	"time"

	"github.com/comalice/navsyncx/internal/core"
	"github.com/comalice/navsyncx/internal/extensibility"
	"github.com/comalice/navsyncx/internal/production"
)

// Re-export the pluggable component implementations so embedders can wire a
// program without reaching into internal packages.

type (
	// MemoryHistory is an in-process browser-history simulator implementing
	// both Navigator and LocationSource.
	MemoryHistory = extensibility.MemoryHistory
	// ChannelLocationSource feeds URL reports from a Go channel.
	ChannelLocationSource = extensibility.ChannelLocationSource
	// PollingLocationSource samples a current-URL function for changes.
	PollingLocationSource = extensibility.PollingLocationSource
	// DefaultEffectRunner executes func-shaped commands.
	DefaultEffectRunner = extensibility.DefaultEffectRunner
	// FuncEffectRunner adapts a plain function to EffectRunner.
	FuncEffectRunner = extensibility.FuncEffectRunner

	// JSONPersister stores router snapshots as JSON files.
	JSONPersister = production.JSONPersister
	// YAMLPersister stores router snapshots as YAML files.
	YAMLPersister = production.YAMLPersister
	// ChannelPublisher forwards navigation records to a channel.
	ChannelPublisher = production.ChannelPublisher
	// LogPublisher logs one line per navigation record.
	LogPublisher = production.LogPublisher
	// SQLiteJournal appends navigation records to a SQLite database.
	SQLiteJournal = production.SQLiteJournal
	// JournalEntry is one persisted navigation record.
	JournalEntry = production.JournalEntry
)

// NewMemoryHistory creates a history whose single entry is the initial URL.
func NewMemoryHistory(initial string) *MemoryHistory {
	return extensibility.NewMemoryHistory(initial)
}

// NewChannelLocationSource creates a channel-backed source with the given buffer.
func NewChannelLocationSource(buffer int) *ChannelLocationSource {
	return extensibility.NewChannelLocationSource(buffer)
}

// NewPollingLocationSource samples current every d and emits on change.
func NewPollingLocationSource(current func() string, d time.Duration) *PollingLocationSource {
	return extensibility.NewPollingLocationSource(current, d)
}

// NewJSONPersister creates a JSON snapshot persister rooted at dir.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	return production.NewJSONPersister(dir)
}

// NewYAMLPersister creates a YAML snapshot persister rooted at dir.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	return production.NewYAMLPersister(dir)
}

// NewChannelPublisher creates a publisher writing to ch.
func NewChannelPublisher(ch chan<- core.NavMetadata) *ChannelPublisher {
	return production.NewChannelPublisher(ch)
}

// NewSQLiteJournal opens or creates the navigation journal at dbPath.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	return production.NewSQLiteJournal(dbPath)
}
