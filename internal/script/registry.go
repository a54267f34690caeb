// Package script maintains the ordered list of runnable scripts and its
// on-disk JSON form.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Entry is one runnable script in the launcher list.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Registry holds the script list. The whole list is serialized as a JSON
// array and rewritten in full on every add or remove, so the file always
// reflects the in-memory order.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	file    string
}

// DefaultPath returns the standard registry location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "scriptdeck", "scripts.json"), nil
}

// NewRegistry creates a registry persisted at file. Nothing is read until
// Load is called.
func NewRegistry(file string) *Registry {
	return &Registry{file: file}
}

// Load reads the persisted list. A missing file leaves the registry empty
// with no error; a malformed file leaves it empty and returns the parse
// error so the caller can warn.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", r.file, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", r.file, err)
	}
	r.entries = entries
	return nil
}

// Add appends a script by path, naming it after its basename. The path must
// point at an existing regular file and must not already be listed.
func (r *Registry) Add(path string) (Entry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Entry{}, errors.New("script path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("%s is a directory", abs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.Path == abs {
			return Entry{}, fmt.Errorf("%s is already in the list", abs)
		}
	}

	entry := Entry{Name: filepath.Base(abs), Path: abs}
	r.entries = append(r.entries, entry)
	if err := r.saveLocked(); err != nil {
		return entry, err
	}
	return entry, nil
}

// Remove deletes the entry at index, preserving the order of the rest.
func (r *Registry) Remove(index int) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.entries) {
		return Entry{}, fmt.Errorf("no script at index %d", index)
	}
	entry := r.entries[index]
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
	if err := r.saveLocked(); err != nil {
		return entry, err
	}
	return entry, nil
}

// Get returns the entry at index.
func (r *Registry) Get(index int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[index], true
}

// List returns a copy of the entries in order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// saveLocked rewrites the whole file. Written to a temp file first so a
// crash mid-write never truncates the list.
func (r *Registry) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.file), 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	entries := r.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scripts: %w", err)
	}
	data = append(data, '\n')

	tmp := r.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.file); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
