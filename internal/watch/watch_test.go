package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metaphox/monkey/internal/watch"
)

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the handler")
		return ""
	}
}

func TestRunReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.mk")
	if err := os.WriteFile(path, []byte("let a = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- watch.Run(ctx, path, func(src []byte) { seen <- string(src) })
	}()

	if got := receive(t, seen); got != "let a = 1;" {
		t.Fatalf("initial contents: got %q", got)
	}

	if err := os.WriteFile(path, []byte("let b = 2;"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A single write may surface as several events; wait for the new text.
	for {
		if got := receive(t, seen); got == "let b = 2;" {
			break
		}
	}

	// Sibling files are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.mk"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-seen:
		t.Fatalf("unexpected call for a sibling file: %q", got)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMissingFile(t *testing.T) {
	err := watch.Run(context.Background(), filepath.Join(t.TempDir(), "nope.mk"), func([]byte) {
		t.Fatal("handler should not run")
	})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
