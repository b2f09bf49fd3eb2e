package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pfrederiksen/novel-search/internal/novel"
)

// DefaultPath is where the collection is stored unless configured otherwise
const DefaultPath = "~/.local/share/novel-search/award_novels.json"

// ErrLocked is returned by Lock when another process holds the data file
var ErrLocked = errors.New("data file is locked by another novel-search process")

// Storage handles persistence of the novel collection
type Storage struct {
	path string
}

// New creates a Storage for the given file, creating its directory if needed
func New(path string) (*Storage, error) {
	path, err := ExpandHome(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("data file path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		path: path,
	}, nil
}

// ExpandHome expands a leading "~/" to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Path returns the data file location
func (s *Storage) Path() string {
	return s.path
}

// Load reads the collection. A missing file is an empty collection.
func (s *Storage) Load() ([]*novel.Novel, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*novel.Novel{}, nil
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []*novel.Novel{}, nil
	}

	var novels []*novel.Novel
	if err := json.Unmarshal(data, &novels); err != nil {
		return nil, fmt.Errorf("parsing data file %s: %w", s.path, err)
	}

	valid := make([]*novel.Novel, 0, len(novels))
	for _, n := range novels {
		if n == nil {
			continue
		}
		if n.POV != nil && !n.POV.Valid() {
			return nil, fmt.Errorf("parsing data file %s: %s has invalid pov %q", s.path, n.Key(), *n.POV)
		}
		valid = append(valid, n)
	}

	return valid, nil
}

// Save writes the collection in canonical order. The caller's slice is not reordered.
func (s *Storage) Save(novels []*novel.Novel) error {
	ordered := make([]*novel.Novel, len(novels))
	copy(ordered, novels)
	novel.SortCanonical(ordered)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(ordered); err != nil {
		return fmt.Errorf("encoding novels: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting data file mode: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}

	return nil
}

// Lock takes an exclusive advisory lock on the data file for the duration of
// a command. It fails with ErrLocked instead of waiting.
func (s *Storage) Lock() (func() error, error) {
	lock := flock.New(s.path + ".lock")

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.path)
	}

	return lock.Unlock, nil
}
