// Package storage provides blob storage for attachment bytes.
package storage

import (
	"io"
	"io/fs"
	"time"
)

// Object is an interface for objects that can be stored.
type Object interface {
	io.ReadSeeker
	io.Closer
}

// Blob is a stored object with its metadata.
type Blob struct {
	Object
	Key         string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Storage is an interface for storing and retrieving objects.
// Missing keys produce errors matching fs.ErrNotExist.
type Storage interface {
	Put(key string, r io.Reader, contentType string) (int64, error)
	Get(key string) (*Blob, error)
	Stat(key string) (fs.FileInfo, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	List() ([]string, error)
}
