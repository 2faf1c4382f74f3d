package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// FileSpec describes a file written by MustWriteTestFiles.
type FileSpec struct {
	// Path is the slash-separated name of the file relative to the test
	// directory.
	Path string
	// Content is the file content.
	Content string
}

// MustPrepareTestFiles writes files into a fresh temporary directory that
// is removed when the test ends.
func MustPrepareTestFiles(t *testing.T, files []FileSpec) (tmpDir string, filenames []string) {
	t.Helper()
	tmpDir = t.TempDir()
	filenames = MustWriteTestFiles(t, tmpDir, files)
	return tmpDir, filenames
}

func MustWriteTestFiles(t *testing.T, tmpDir string, files []FileSpec) []string {
	t.Helper()
	var filenames []string
	for _, file := range files {
		abs := filepath.Join(tmpDir, filepath.FromSlash(file.Path))
		dir := filepath.Dir(abs)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(file.Content), 0o644); err != nil {
			t.Fatal(err)
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		ListFiles(t, dir)
		t.Fatal("reading", filename, ":", err)
	}
	return string(data)
}

// EqualError reports whether errors a and b are considered equal.
// They're equal if both are nil, or both are not nil and a.Error() == b.Error().
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// TestLogger returns a debug-level logger that writes to the test log.
func TestLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// ListFiles is a convenience debugging function to log the files under a given dir.
func ListFiles(t *testing.T, dir string) {
	t.Log("Listing files under:", dir)
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		t.Log(path)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}
