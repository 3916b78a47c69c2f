package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var errCorrupt = errors.New("corrupt session document")

// File stores every key in one JSON object on disk. A missing file reads as
// empty. Writes go through a temp file and a rename so a crash never leaves
// a half-written document. A corrupt document is reported by Get and Ping;
// Set and Remove replace it with a fresh one.
type File struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

func NewFile(path string, log zerolog.Logger) *File {
	return &File{path: path, log: log}
}

// Path is the backing file.
func (f *File) Path() string { return f.path }

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.loadForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return f.store(data)
}

func (f *File) Remove(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, changed, err := f.loadForWrite()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, ok := data[k]; ok {
			delete(data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.store(data)
}

// Ping checks that the document is readable.
func (f *File) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.load()
	return err
}

func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", f.path, errCorrupt, err)
	}
	return data, nil
}

// loadForWrite is load for mutations: a corrupt document is discarded and
// reset reports that it must be rewritten.
func (f *File) loadForWrite() (data map[string]string, reset bool, err error) {
	data, err = f.load()
	if errors.Is(err, errCorrupt) {
		f.log.Warn().Err(err).Str("path", f.path).Msg("discarding corrupt session document")
		return make(map[string]string), true, nil
	}
	return data, false, err
}

func (f *File) store(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
