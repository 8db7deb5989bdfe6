// Package production provides production integrations for the router:
// snapshot persistence, navigation publishing, and the durable journal.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/navsyncx/internal/core"
)

// JSONPersister is a stdlib-only file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.RouterSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.ProgramID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(ctx context.Context, programID string) (core.RouterSnapshot, error) {
	fn := filepath.Join(p.dir, programID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.RouterSnapshot{}, fmt.Errorf("program %q: %w", programID, os.ErrNotExist)
		}
		return core.RouterSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.RouterSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.RouterSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.ProgramID = programID // Ensure ID
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization for RouterSnapshot.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.RouterSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.ProgramID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, programID string) (core.RouterSnapshot, error) {
	fn := filepath.Join(p.dir, programID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.RouterSnapshot{}, fmt.Errorf("program %q: %w", programID, os.ErrNotExist)
		}
		return core.RouterSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.RouterSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.RouterSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.ProgramID = programID
	return snapshot, nil
}
