package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
)

// FileStorage keeps each key as a json file in the location directory
type FileStorage struct {
	location string
}

// NewFileStorage makes storage for given location, the directory is created if missing
func NewFileStorage(location string) *FileStorage {
	if err := os.MkdirAll(location, 0o700); err != nil {
		log.Printf("[WARN] can't make %s, %s", location, err)
	}
	return &FileStorage{location: location}
}

// Load reads the blob for key
func (f *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.fileName(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes the blob for key atomically, via temp file and rename
func (f *FileStorage) Save(key string, data []byte) error {
	fname := f.fileName(key)
	tmp := fname + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fname); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	log.Printf("[DEBUG] saved %s to %s", key, fname)
	return nil
}

func (f *FileStorage) fileName(key string) string {
	return filepath.Join(f.location, key+".json")
}

func (f *FileStorage) String() string {
	return fmt.Sprintf("file storage, location:%s", f.location)
}
