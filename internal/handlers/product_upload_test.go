package handlers

import "testing"

func TestUploadedImageRefURLMatchesStaticMount(t *testing.T) {
	img := uploadedImageRef("http://localhost:8080", "uploads/products/abc.png", "abc.png")

	// uploads are served under the /public static route
	if img.URL != "http://localhost:8080/public/uploads/products/abc.png" {
		t.Fatalf("unexpected URL: %q", img.URL)
	}
	if img.PublicID != "uploads/products/abc.png" {
		t.Fatalf("expected relative path in publicId, got %q", img.PublicID)
	}
}

func TestUploadedImageRefTrimsBaseSlash(t *testing.T) {
	img := uploadedImageRef("http://localhost:8080/", "uploads/products/abc.png", "abc.png")

	if img.URL != "http://localhost:8080/public/uploads/products/abc.png" {
		t.Fatalf("unexpected URL: %q", img.URL)
	}
}

func TestUploadedImageRefAltFromFilename(t *testing.T) {
	img := uploadedImageRef("http://localhost:8080", "uploads/products/abc.webp", "rose-gel.webp")

	if img.Alt != "rose-gel" {
		t.Fatalf("expected extension stripped from alt, got %q", img.Alt)
	}
}
