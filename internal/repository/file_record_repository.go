package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/storefront/backend/internal/model"
)

// FileRecordRepository stores one kind of record as a single indented JSON
// array on disk. Every Append reads the whole file, adds one element and
// rewrites the file.
//
// A file that cannot be read or parsed is treated as empty, so the next
// successful Append replaces its previous content.
type FileRecordRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRecordRepository creates a FileRecordRepository for the file at path.
// The file does not need to exist yet.
func NewFileRecordRepository(path string) *FileRecordRepository {
	return &FileRecordRepository{path: path}
}

// Ensure FileRecordRepository implements RecordRepository at compile time.
var _ RecordRepository = (*FileRecordRepository)(nil)

// Path returns the location of the backing file.
func (r *FileRecordRepository) Path() string {
	return r.path
}

// Append adds rec to the end of the stored array.
func (r *FileRecordRepository) Append(_ context.Context, rec *model.Record) error {
	raw, err := rec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("file store: encode record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := append(r.load(), json.RawMessage(raw))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("file store: encode %s: %w", r.path, err)
	}

	if err := os.WriteFile(r.path, bytes.TrimSuffix(buf.Bytes(), []byte("\n")), 0o644); err != nil {
		return fmt.Errorf("file store: write %s: %w", r.path, err)
	}
	return nil
}

// load returns the stored elements verbatim, or nil when the file is missing,
// empty, unreadable or not a JSON array.
func (r *FileRecordRepository) load() []json.RawMessage {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("store file unreadable, starting empty", "path", r.path, "error", err)
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("store file is not a JSON array, starting empty", "path", r.path, "error", err)
		return nil
	}
	return records
}

// Ping checks that the directory holding the store file exists.
func (r *FileRecordRepository) Ping(_ context.Context) error {
	dir := filepath.Dir(r.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrStoreUnavailable, dir)
	}
	return nil
}
