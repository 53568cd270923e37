package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Walk returns every non-directory entry beneath root, sorted by path.
// Returned paths are root-joined with filepath.Join. Any directory that
// cannot be listed, the root included, aborts the walk with an error.
// Symbolic links below the root are not followed.
func Walk(fsys afero.Fs, root string) ([]string, error) {
	if root == "" {
		return nil, errors.New("empty root directory")
	}
	// trailing separator makes lstat resolve a symlinked root
	start := root
	if !strings.HasSuffix(start, string(filepath.Separator)) {
		start += string(filepath.Separator)
	}
	var paths []string
	err := afero.Walk(fsys, start, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, "unable to list %s", path)
		}
		if info.IsDir() {
			return nil
		}
		if path == start {
			return errors.Errorf("unable to list %s: not a directory", root)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
