package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"
	"github.com/scerpa/scerpa-config/internal/domain"
)

// ErrFileExists is returned when overwriting is disabled and the target exists
var ErrFileExists = errors.New("file already exists")

// FileStore writes records to a single file on disk
type FileStore struct {
	mu        sync.Mutex
	path      string
	format    string
	overwrite bool
	backup    bool
	logger    domain.Logger
}

// NewFileStore creates a store from the store settings
func NewFileStore(cfg domain.StoreConfig, logger domain.Logger) *FileStore {
	return &FileStore{
		path:      cfg.Path,
		format:    FormatForPath(cfg.Path, cfg.Format),
		overwrite: cfg.Overwrite,
		backup:    cfg.Backup,
		logger:    logger,
	}
}

// Path returns the file the store writes to
func (s *FileStore) Path() string {
	return s.path
}

// Format returns the encoding used for the file
func (s *FileStore) Format() string {
	return s.format
}

// Exists reports whether the target file is present
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save implements domain.Persister. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, r domain.Record) error {
	errb := oops.In("store").With("path", s.path, "format", s.format)

	if err := ctx.Err(); err != nil {
		return errb.Wrapf(err, "save cancelled")
	}

	data, err := Encode(r, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists := s.Exists()
	if exists && !s.overwrite {
		return errb.Wrap(ErrFileExists)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errb.Wrapf(err, "failed to create directory")
	}

	if exists && s.backup {
		if err := copyFile(s.path, s.path+".bak"); err != nil {
			return errb.Wrapf(err, "failed to back up previous file")
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errb.Wrapf(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errb.Wrapf(err, "failed to write record")
	}
	if err := tmp.Close(); err != nil {
		return errb.Wrapf(err, "failed to write record")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errb.Wrapf(err, "failed to set file mode")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errb.Wrapf(err, "failed to replace file")
	}

	if s.logger != nil {
		s.logger.Info("configuration written", "path", s.path, "format", s.format, "bytes", len(data))
	}
	return nil
}

// Load implements domain.RecordLoader
func (s *FileStore) Load(ctx context.Context) (domain.Record, error) {
	errb := oops.In("store").With("path", s.path, "format", s.format)

	if err := ctx.Err(); err != nil {
		return domain.Record{}, errb.Wrapf(err, "load cancelled")
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		return domain.Record{}, errb.Wrapf(err, "failed to read record")
	}

	r, err := Decode(data, s.format)
	if err != nil {
		return domain.Record{}, errb.Wrap(err)
	}
	return r, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
