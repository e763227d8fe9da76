package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const (
	objectsDir = "objects"
	typesDir   = "types"

	defaultContentType = "application/octet-stream"
)

// LocalStorage is a storage implementation that stores objects on the local
// filesystem. Content types live in a parallel tree next to the objects.
type LocalStorage struct {
	root string
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage.
func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Delete implements Storage.
func (l *LocalStorage) Delete(key string) error {
	name := l.objectPath(key)
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", name, err)
	}
	if err := os.Remove(l.typePath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove content type of %s: %w", name, err)
	}
	return nil
}

// Get implements Storage.
func (l *LocalStorage) Get(key string) (*Blob, error) {
	name := l.objectPath(key)
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close() // nolint: errcheck
		return nil, fmt.Errorf("failed to stat file %s: %w", name, err)
	}

	ct := defaultContentType
	if b, err := os.ReadFile(l.typePath(key)); err == nil && len(b) > 0 {
		ct = string(b)
	}

	return &Blob{
		Object:      f,
		Key:         key,
		ContentType: ct,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// Stat implements Storage.
func (l *LocalStorage) Stat(key string) (fs.FileInfo, error) {
	name := l.objectPath(key)
	info, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", name, err)
	}
	return info, nil
}

// Put implements Storage.
func (l *LocalStorage) Put(key string, r io.Reader, contentType string) (int64, error) {
	name := l.objectPath(key)
	if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", name, err)
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("failed to copy data to file %s: %w", name, err)
	}

	if contentType == "" {
		contentType = defaultContentType
	}
	tp := l.typePath(key)
	if err := os.MkdirAll(filepath.Dir(tp), os.ModePerm); err != nil {
		return n, fmt.Errorf("failed to create directory for %s: %w", tp, err)
	}
	if err := os.WriteFile(tp, []byte(contentType), 0o600); err != nil {
		return n, fmt.Errorf("failed to write content type of %s: %w", name, err)
	}
	return n, nil
}

// Exists implements Storage.
func (l *LocalStorage) Exists(key string) (bool, error) {
	name := l.objectPath(key)
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence of file %s: %w", name, err)
}

// List implements Storage. Keys are returned sorted.
func (l *LocalStorage) List() ([]string, error) {
	root := filepath.Join(l.root, objectsDir)
	keys := make([]string, 0)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (l *LocalStorage) objectPath(key string) string {
	return l.fixPath(objectsDir, key)
}

func (l *LocalStorage) typePath(key string) string {
	return l.fixPath(typesDir, key)
}

// fixPath maps a slash separated key below dir. Keys can never escape the
// storage root.
func (l *LocalStorage) fixPath(dir, key string) string {
	key = path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return filepath.Join(l.root, dir, filepath.FromSlash(key))
}
