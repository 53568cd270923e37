package assets

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestBuild(t *testing.T) {
	fsys := site(t)
	store, err := Build(fsys, "/site", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Root() != "/site" {
		t.Errorf("unexpected root %q", store.Root())
	}
	if store.Len() != 6 {
		t.Errorf("expected 6 assets, got %d", store.Len())
	}
	var size int64
	for _, key := range store.Keys() {
		a, _ := store.Lookup(key)
		size += int64(len(a.Bytes))
	}
	if store.Size() != size {
		t.Errorf("expected size %d, got %d", size, store.Size())
	}

	a, ok := store.Lookup("/site/index.html")
	if !ok {
		t.Fatal("index.html should be present")
	}
	if a.Path != "/site/index.html" || string(a.Bytes) != "<h1>hi</h1>" || a.ContentType != "text/html" {
		t.Errorf("unexpected asset %+v", a)
	}

	if _, ok := store.Lookup("/site/missing.js"); ok {
		t.Error("missing.js should be absent")
	}
}

func TestBuildDeterministic(t *testing.T) {
	fsys := site(t)
	first, err := Build(fsys, "/site", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(fsys, "/site", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Keys(), second.Keys()) {
		t.Fatalf("key sets differ: %v vs %v", first.Keys(), second.Keys())
	}
	for _, key := range first.Keys() {
		a, _ := first.Lookup(key)
		b, _ := second.Lookup(key)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("asset %s differs between builds", key)
		}
	}
}

func TestBuildPartialFailure(t *testing.T) {
	rep := &recordingReporter{}
	fsys := brokenFs{Fs: site(t), broken: map[string]bool{"/site/img/logo.png": true}}
	store, err := Build(fsys, "/site", rep)
	if err != nil {
		t.Fatalf("build should not fail on an unreadable file: %v", err)
	}
	if store.Len() != 5 {
		t.Errorf("expected 5 assets, got %d", store.Len())
	}
	if _, ok := store.Lookup("/site/img/logo.png"); ok {
		t.Error("unreadable file should be absent")
	}
	if len(rep.warns) == 0 {
		t.Error("expected a warning for the unreadable file")
	}
}

func TestBuildFailsOnBadRoot(t *testing.T) {
	if _, err := Build(afero.NewMemMapFs(), "/nowhere", nil); err == nil {
		t.Fatal("expected error for missing root")
	}
	fsys := brokenFs{Fs: site(t), broken: map[string]bool{"/site/css": true}}
	if _, err := Build(fsys, "/site", nil); err == nil {
		t.Fatal("expected error for unlistable subdirectory")
	}
}

func TestKeysIsACopy(t *testing.T) {
	store, err := Build(site(t), "/site", nil)
	if err != nil {
		t.Fatal(err)
	}
	keys := store.Keys()
	keys[0] = "changed"
	if store.Keys()[0] == "changed" {
		t.Error("Keys should return a copy")
	}
}

func TestBuildOsFs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html":   "<h1>hi</h1>",
		"css/site.css": "body{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := Build(afero.NewOsFs(), dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, content := range files {
		a, ok := store.Lookup(filepath.Join(dir, name))
		if !ok {
			t.Errorf("%s should be present", name)
			continue
		}
		if string(a.Bytes) != content {
			t.Errorf("%s: expected %q, got %q", name, content, a.Bytes)
		}
	}
}
