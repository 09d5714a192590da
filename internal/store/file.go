package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ebogdanov/userstore/internal/filex"
	"github.com/ebogdanov/userstore/internal/logging"
)

const filePerm = 0o644

// FileStore reads and writes a whole record collection as an indented JSON
// array in a single file. A missing or undecodable file loads as an empty
// collection; permission and other IO errors propagate. Save replaces the
// file atomically, so readers never observe a partial write.
type FileStore struct {
	path string
	log  logging.Logger
}

func NewFileStore(path string, log logging.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// EnsureExists creates the backing file with an empty collection when it is
// absent, so later loads find a well-formed file.
func (s *FileStore) EnsureExists() error {
	return filex.EnsureFile(s.path, []byte("[]"), filePerm)
}

// Load reads the full record collection. Absence of the file is equivalent
// to an empty collection; content that fails to decode is treated the same
// way (the repair-on-load path rewrites it), with a warning logged.
func (s *FileStore) Load() ([]Record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		s.log.Warn(context.Background(), "store file is not a valid record collection, treating as empty",
			"file", s.path, "error", err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Save replaces the entire prior content with the given records.
func (s *FileStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := filex.WriteAtomic(s.path, b, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
