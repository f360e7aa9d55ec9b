package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type jsonFile struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// JSONStore keeps the whole key-value map in a single JSON document on disk.
// Every mutation rewrites the file; fine at this data scale (single user,
// bounded by days of use).
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &jsonFile{
		Version: 1,
		Entries: make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'pitchmind init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.file.Entries == nil {
		s.file.Entries = make(map[string]json.RawMessage)
	}

	// The indented on-disk form reflows nested values; normalize them back so
	// Get returns the same bytes Set stored.
	for key, value := range s.file.Entries {
		compacted, err := compactJSON(value)
		if err != nil {
			return fmt.Errorf("failed to parse storage entry %s: %w", key, err)
		}
		s.file.Entries[key] = compacted
	}

	return nil
}

func compactJSON(value []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.file == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.file.Entries[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores value under key. The value must be valid JSON; it is stored in
// compact form so reads return identical bytes before and after a reload.
func (s *JSONStore) Set(key string, value []byte) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	compacted, err := compactJSON(value)
	if err != nil {
		return fmt.Errorf("refusing to store invalid JSON for %s: %w", key, err)
	}
	s.file.Entries[key] = compacted
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.file.Entries, key)
	return s.save()
}

// Path returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple pitchmind processes sharing the same storage path is not
//     supported and may lose writes.
func (s *JSONStore) Path() string {
	return s.path
}
