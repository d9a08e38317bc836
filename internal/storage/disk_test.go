package storage

import (
	"io"
	"strings"
	"testing"
)

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first, err := store.Save(strings.NewReader("first"), "report.pdf")
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.Save(strings.NewReader("second"), "report.pdf")
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	if first.StoredName == second.StoredName {
		t.Fatalf("expected distinct stored names, both %s", first.StoredName)
	}
	if !strings.HasSuffix(first.StoredName, ".pdf") {
		t.Fatalf("expected the original extension to survive, got %s", first.StoredName)
	}
	if first.Size != int64(len("first")) {
		t.Fatalf("expected size %d, got %d", len("first"), first.Size)
	}

	f, err := store.Open(second.StoredName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "second" {
		t.Fatalf("expected second payload, got %q", content)
	}
}

func TestRemoveLeavesOtherFiles(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	keep, err := store.Save(strings.NewReader("keep"), "a.txt")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	drop, err := store.Save(strings.NewReader("drop"), "a.txt")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Remove(drop.StoredName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Open(drop.StoredName); err == nil {
		t.Fatal("expected removed file to be gone")
	}
	if _, err := store.Open(keep.StoredName); err != nil {
		t.Fatalf("expected the other file to survive, got %v", err)
	}
}

func TestRemoveMissingFileIsIdempotent(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Remove("never-existed.bin"); err != nil {
		t.Fatalf("expected missing file removal to succeed, got %v", err)
	}
}
