// Package testutil holds helpers shared by sqltask tests.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// StdoutOutputForFunc runs f with os.Stdout redirected and returns everything written to it.
func StdoutOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stdout
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var out bytes.Buffer

	_, _ = io.Copy(&out, r)

	return out.String()
}

// StderrOutputForFunc runs f with os.Stderr redirected and returns everything written to it.
func StderrOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stderr
	os.Stderr = w

	f()

	_ = w.Close()
	os.Stderr = old

	var out bytes.Buffer

	_, _ = io.Copy(&out, r)

	return out.String()
}

// SQLiteFile returns the path of a fresh sqlite database file inside the test's temp dir.
func SQLiteFile(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "sqltask.db")
}
