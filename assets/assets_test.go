package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

// brokenFs fails to open the listed paths with a permission error.
type brokenFs struct {
	afero.Fs
	broken map[string]bool
}

func (b brokenFs) Open(name string) (afero.File, error) {
	if b.broken[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return b.Fs.Open(name)
}

// recordingReporter keeps every report for inspection.
type recordingReporter struct {
	mu    sync.Mutex
	warns []string
	other []string
}

func (r *recordingReporter) Info(format string, args ...interface{}) {
	r.record(&r.other, format, args...)
}

func (r *recordingReporter) Warn(format string, args ...interface{}) {
	r.record(&r.warns, format, args...)
}

func (r *recordingReporter) Error(format string, args ...interface{}) {
	r.record(&r.other, format, args...)
}

func (r *recordingReporter) Success(format string, args ...interface{}) {
	r.record(&r.other, format, args...)
}

func (r *recordingReporter) record(dst *[]string, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

// helper to create files in fsys, keys are paths and values are contents
func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := fsys.MkdirAll(filepath.Dir(name), 0755); err != nil {
			t.Fatalf("unable to create directory for %s: %v", name, err)
		}
		if err := afero.WriteFile(fsys, name, []byte(content), 0644); err != nil {
			t.Fatalf("unable to write %s: %v", name, err)
		}
	}
}

// site returns an in-memory tree rooted at /site
func site(t *testing.T) afero.Fs {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"/site/index.html":         "<h1>hi</h1>",
		"/site/css/site.css":       "body{}",
		"/site/js/app.js":          "console.log(1)",
		"/site/img/logo.png":       "\x89PNG",
		"/site/docs/deep/note.txt": "note",
		"/site/LICENSE":            "MIT",
	})
	return fsys
}
