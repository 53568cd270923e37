package assets

import (
	"github.com/spf13/afero"
)

// Load reads every path into memory. A file that cannot be read is reported
// through r and left out of the result; it never aborts the load.
func Load(fsys afero.Fs, paths []string, r Reporter) map[string][]byte {
	if r == nil {
		r = NopReporter{}
	}
	contents := make(map[string][]byte, len(paths))
	for _, path := range paths {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			r.Warn("Failed to read file %q. Ignoring it...", path)
			r.Warn("%v", err)
			continue
		}
		contents[path] = data
	}
	return contents
}
