package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRemovesFileUnderRoot(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	target := filepath.Join(dir, "x.png")
	if err := os.WriteFile(target, []byte("png"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := safeDeleteUpload(root, "uploads/products/x.png"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadMissingFileIsNoOp(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "uploads/products/gone.png"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestSafeDeleteUploadRefusesNonUploadPath(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "config/.env"); err == nil {
		t.Fatal("expected refusal for path outside uploads/")
	}
}

func TestSafeDeleteUploadRefusesTraversal(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "uploads/../../etc/passwd"); err == nil {
		t.Fatal("expected refusal for a path escaping the public root")
	}
}

func TestSafeDeleteUploadEmptyPathIsNoOp(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "  "); err != nil {
		t.Fatalf("expected nil for blank path, got %v", err)
	}
}
