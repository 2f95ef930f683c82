package jd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTextPlainText(t *testing.T) {
	e := NewExtractor(t.TempDir())

	text, err := e.ExtractText("posting.txt", strings.NewReader("  Senior Go Engineer\nRemote\n\n"))
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if text != "Senior Go Engineer\nRemote" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextUnsupportedType(t *testing.T) {
	e := NewExtractor(t.TempDir())

	_, err := e.ExtractText("resume.png", strings.NewReader("binary"))
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("error = %v", err)
	}
}

func TestExtractTextCleansUp(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(dir)

	if _, err := e.ExtractText("posting.txt", strings.NewReader("text")); err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "posting.txt")); !os.IsNotExist(err) {
		t.Error("uploaded file should be removed after extraction")
	}
}

func TestExtractTextStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(dir)

	// A hostile filename must not escape the uploads dir.
	if _, err := e.ExtractText("../../etc/evil.txt", strings.NewReader("text")); err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "..", "etc", "evil.txt")); !os.IsNotExist(err) {
		t.Error("file written outside uploads dir")
	}
}
