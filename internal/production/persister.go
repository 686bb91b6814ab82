// Package production provides the outer integrations of the simulator:
// trace storage, record publishing and visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/greaheisl/relaybox/internal/sim"
)

// ErrUnknownFormat is returned by NewTraceStore for unsupported formats.
var ErrUnknownFormat = errors.New("unknown trace format")

// TraceStore saves traces and loads them back by run id.
type TraceStore interface {
	Save(ctx context.Context, trace *sim.Trace) (string, error)
	Load(ctx context.Context, runID uuid.UUID) (*sim.Trace, error)
}

// NewTraceStore creates a store for format "json" or "yaml" in dir.
func NewTraceStore(format, dir string) (TraceStore, error) {
	switch format {
	case "json":
		return NewJSONTraceWriter(dir)
	case "yaml", "yml":
		return NewYAMLTraceWriter(dir)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

// fileStore keeps one file per run.
type fileStore struct {
	dir string
	codec
}

func newFileStore(dir string, c codec) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return fileStore{dir: dir, codec: c}, nil
}

func (s fileStore) path(runID uuid.UUID) string {
	return filepath.Join(s.dir, runID.String()+s.ext)
}

func (s fileStore) save(ctx context.Context, trace *sim.Trace) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.marshal(trace)
	if err != nil {
		return "", fmt.Errorf("%s marshal: %w", s.ext[1:], err)
	}
	fn := s.path(trace.RunID)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fn, err)
	}
	return fn, nil
}

func (s fileStore) load(ctx context.Context, runID uuid.UUID) (*sim.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := s.path(runID)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("run %s: %w", runID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	var trace sim.Trace
	if err := s.unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("%s unmarshal: %w", s.ext[1:], err)
	}
	if trace.RunID != runID {
		return nil, fmt.Errorf("%s holds run %s", fn, trace.RunID)
	}
	return &trace, nil
}

// JSONTraceWriter stores traces as indented JSON files named by run id.
type JSONTraceWriter struct {
	store fileStore
}

// NewJSONTraceWriter creates a JSONTraceWriter, ensuring the directory exists.
func NewJSONTraceWriter(dir string) (*JSONTraceWriter, error) {
	s, err := newFileStore(dir, codec{
		ext:       ".json",
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	})
	if err != nil {
		return nil, err
	}
	return &JSONTraceWriter{store: s}, nil
}

// Save writes trace and returns the file name.
func (w *JSONTraceWriter) Save(ctx context.Context, trace *sim.Trace) (string, error) {
	return w.store.save(ctx, trace)
}

// Load reads the trace of a run.
func (w *JSONTraceWriter) Load(ctx context.Context, runID uuid.UUID) (*sim.Trace, error) {
	return w.store.load(ctx, runID)
}

// YAMLTraceWriter stores traces as YAML files named by run id.
type YAMLTraceWriter struct {
	store fileStore
}

// NewYAMLTraceWriter creates a YAMLTraceWriter, ensuring the directory exists.
func NewYAMLTraceWriter(dir string) (*YAMLTraceWriter, error) {
	s, err := newFileStore(dir, codec{
		ext:       ".yaml",
		marshal:   yaml.Marshal,
		unmarshal: yaml.Unmarshal,
	})
	if err != nil {
		return nil, err
	}
	return &YAMLTraceWriter{store: s}, nil
}

// Save writes trace and returns the file name.
func (w *YAMLTraceWriter) Save(ctx context.Context, trace *sim.Trace) (string, error) {
	return w.store.save(ctx, trace)
}

// Load reads the trace of a run.
func (w *YAMLTraceWriter) Load(ctx context.Context, runID uuid.UUID) (*sim.Trace, error) {
	return w.store.load(ctx, runID)
}
