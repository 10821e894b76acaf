package scope

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func seedTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.md", "b.txt", filepath.Join("sub", "c.md"), filepath.Join("sub", "d.txt")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestDiscoverRecursive(t *testing.T) {
	dir := seedTree(t)

	discoverer, err := New(Config{BaseDir: dir, Recursive: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := discoverer.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "c.md"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("file %d mismatch: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscoverNonRecursive(t *testing.T) {
	dir := seedTree(t)

	discoverer, err := New(Config{BaseDir: dir, Recursive: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := discoverer.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(dir, "a.md") {
		t.Fatalf("non-recursive discovery should stop at the root: %v", files)
	}
}

func TestDiscoverCustomPatterns(t *testing.T) {
	dir := seedTree(t)

	discoverer, err := New(Config{BaseDir: dir, Patterns: []string{"*.txt"}, Recursive: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := discoverer.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected both txt files, got %v", files)
	}
}

func TestDiscoverCachesResult(t *testing.T) {
	dir := seedTree(t)

	discoverer, err := New(Config{BaseDir: dir, Recursive: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := discoverer.Discover(context.Background())
	if err != nil {
		t.Fatalf("first Discover: %v", err)
	}

	// Mutating the tree after discovery must not change the cached scope.
	if err := os.Remove(filepath.Join(dir, "a.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	second, err := discoverer.Discover(context.Background())
	if err != nil {
		t.Fatalf("second Discover: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached scope changed: %v vs %v", first, second)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	if _, err := New(Config{BaseDir: t.TempDir(), Patterns: []string{"[unclosed"}}); err == nil {
		t.Fatalf("expected pattern compile error")
	}
}
