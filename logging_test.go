package main

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logs "github.com/sirupsen/logrus"
)

// helper function to capture standard logger output
func captureLogs(t *testing.T, verbose int) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	setupLogger(buf, verbose, true)
	t.Cleanup(func() { setupLogger(os.Stderr, 0, false) })
	return buf
}

func TestConsoleFormatter(t *testing.T) {
	buf := captureLogs(t, 1)
	rep := newReporter(logs.StandardLogger())

	rep.Info("Loading files...")
	rep.Warn("Failed to read file %q. Ignoring it...", "a.txt")
	rep.Error("boom")
	rep.Success("Loaded %d files in %.2fs.", 2, 0.5)
	logs.WithFields(logs.Fields{"Addr": ":3000", "Base": "/"}).Debug("server")

	want := []string{
		"info ~> Loading files...",
		`warn ~> Failed to read file "a.txt". Ignoring it...`,
		"error ~> boom",
		"success ~> Loaded 2 files in 0.50s.",
		"debug ~> server Addr=:3000 Base=/",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestVerbosity(t *testing.T) {
	buf := captureLogs(t, 0)
	logs.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output should be suppressed, got %q", buf.String())
	}
	setupLogger(buf, 2, true)
	if !logs.IsLevelEnabled(logs.TraceLevel) {
		t.Error("verbose 2 should enable trace level")
	}
}

func TestLoggingMiddleware(t *testing.T) {
	buf := captureLogs(t, 1)
	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte("body{}"))
	}))
	req := httptest.NewRequest("GET", "/css/site.css", nil)
	req.Header.Set("User-Agent", "test-agent")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"info ~> HTTP/1.1 200", "GET /css/site.css", "[data: 6 out]", "test-agent", `"content_type":"text/css"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}

func TestResponseWriterStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrapResponseWriter(rec)
	if rw.Status() != http.StatusOK {
		t.Errorf("default status should be 200, got %d", rw.Status())
	}
	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)
	if rw.Status() != http.StatusNotFound || rec.Code != http.StatusNotFound {
		t.Errorf("first status should win, got %d", rw.Status())
	}
}

func TestSetupLoggingRotateLogs(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { setupLogger(os.Stderr, 0, false) })
	config := &Configuration{LogFile: filepath.Join(dir, "memserve.log")}
	if err := setupLogging(config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := "GET /a%20b.html"
	logs.Info(msg)

	matches, err := filepath.Glob(filepath.Join(dir, "memserve.log-*"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", matches, err)
	}
	data, err := ioutil.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "info ~> GET /a b.html") {
		t.Errorf("unexpected log content %q", data)
	}
}
