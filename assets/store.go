package assets

import (
	"github.com/spf13/afero"
)

// Asset is a loaded file together with its content type.
type Asset struct {
	Path        string
	Bytes       []byte
	ContentType string
}

// Store maps root-joined file paths to assets. It is immutable once built
// and safe for concurrent use.
type Store struct {
	root   string
	assets map[string]Asset
	keys   []string
	size   int64
}

// Build walks root, loads every file and returns the resulting Store.
// Directory listing failures are returned as errors; unreadable files are
// reported through r and skipped.
func Build(fsys afero.Fs, root string, r Reporter) (*Store, error) {
	if r == nil {
		r = NopReporter{}
	}
	paths, err := Walk(fsys, root)
	if err != nil {
		return nil, err
	}
	contents := Load(fsys, paths, r)
	s := &Store{
		root:   root,
		assets: make(map[string]Asset, len(contents)),
		keys:   make([]string, 0, len(contents)),
	}
	for _, path := range paths {
		data, ok := contents[path]
		if !ok {
			continue
		}
		s.assets[path] = Asset{Path: path, Bytes: data, ContentType: ContentType(path)}
		s.keys = append(s.keys, path)
		s.size += int64(len(data))
	}
	return s, nil
}

// Lookup returns the asset stored under key. The returned Bytes are shared
// with the store and must not be modified.
func (s *Store) Lookup(key string) (Asset, bool) {
	a, ok := s.assets[key]
	return a, ok
}

// Root returns the directory the store was built from.
func (s *Store) Root() string { return s.root }

// Len returns the number of stored assets.
func (s *Store) Len() int { return len(s.assets) }

// Size returns the total number of stored bytes.
func (s *Store) Size() int64 { return s.size }

// Keys returns a sorted copy of the stored keys.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}
