package documents

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestDiskStorageRoundTrip(t *testing.T) {
	storage, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new disk storage: %v", err)
	}

	ctx := context.Background()
	key := "vehicles/abc/doc-1/nota.pdf"
	written, err := storage.Save(ctx, key, strings.NewReader("%PDF-1.7 test"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if written != int64(len("%PDF-1.7 test")) {
		t.Fatalf("expected %d bytes written got %d", len("%PDF-1.7 test"), written)
	}

	reader, err := storage.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.7 test" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := storage.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := storage.Open(ctx, key); err == nil {
		t.Fatal("expected open to fail after delete")
	}
}

func TestDiskStorageRejectsTraversal(t *testing.T) {
	storage, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new disk storage: %v", err)
	}

	if _, err := storage.Save(context.Background(), "../escape.txt", strings.NewReader("x")); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
}

func TestDiskStorageDeleteMissingIsNoop(t *testing.T) {
	storage, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new disk storage: %v", err)
	}
	if err := storage.Delete(context.Background(), "vehicles/none"); err != nil {
		t.Fatalf("expected missing delete to succeed, got %v", err)
	}
}
