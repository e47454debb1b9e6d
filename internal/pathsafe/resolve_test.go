package pathsafe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
	return path
}

func TestResolve_NonExistingReturnedUnchanged(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "movie.mp4")

	for _, force := range []bool{false, true} {
		got, err := Resolve(want, force)
		if err != nil {
			t.Fatalf("Resolve(force=%v): %v", force, err)
		}
		if got != want {
			t.Errorf("Resolve(force=%v) = %q, want %q", force, got, want)
		}
	}
}

func TestResolve_ForceKeepsExistingPath(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "movie.mp4")

	got, err := Resolve(path, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != path {
		t.Errorf("got %q, want %q", got, path)
	}
}

func TestResolve_SuffixesBeforeExtension(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "movie.mp4")

	got, err := Resolve(path, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(dir, "movie_1.mp4")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := os.Stat(got); !os.IsNotExist(err) {
		t.Errorf("resolved path must not exist (side-effect-free): %v", err)
	}
}

func TestResolve_AscendingSuffixOrder(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "track.flac")
	touch(t, dir, "track_1.flac")
	touch(t, dir, "track_2.flac")

	got, err := Resolve(path, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dir, "track_3.flac"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolve_NoExtension(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "cover")

	got, err := Resolve(path, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dir, "cover_1"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolve_MissingParentDir(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve(filepath.Join(dir, "nope", "movie.mp4"), false)
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("err = %v, want ErrInvalidPath", err)
	}
}

func TestResolve_EmptyPath(t *testing.T) {
	_, err := Resolve("", false)
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("err = %v, want ErrInvalidPath", err)
	}
}

func TestResolve_ExhaustedSuffixes(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "f.png")
	for i := 1; i <= maxAttempts; i++ {
		touch(t, dir, fmt.Sprintf("f_%d.png", i))
	}

	_, err := Resolve(path, false)
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("err = %v, want ErrInvalidPath after exhausting suffixes", err)
	}
}
