package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"go.opentelemetry.io/otel/attribute"
)

// FileStore keeps the users collection as an indented JSON array in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("users file path empty")
	}
	return &FileStore{
		path: path,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (_ []User, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.load")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []User{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []User{}, nil
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageCorrupt, err)
	}
	if users == nil {
		users = []User{}
	}

	span.SetAttributes(attribute.Int("users", len(users)))
	return users, nil
}

// Save writes the collection to a temp file next to the target and renames it
// over the target, so readers never see a half written file.
func (s *FileStore) Save(ctx context.Context, users []User) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("path", s.path),
		attribute.Int("users", len(users)),
	)

	if users == nil {
		users = []User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := pkg.EnsureDir(dir); err != nil {
		return fmt.Errorf("ensure users dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
