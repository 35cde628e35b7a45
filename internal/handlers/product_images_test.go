package handlers

import (
	"encoding/json"
	"testing"
)

func TestImageInputAcceptsStringAndObject(t *testing.T) {
	var inputs []imageInput
	payload := `["https://cdn.example.com/a.png", {"url": "https://cdn.example.com/b.png", "alt": "swatch", "public_id": "products/b"}]`
	if err := json.Unmarshal([]byte(payload), &inputs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs[0].URL != "https://cdn.example.com/a.png" || inputs[0].Alt != "" {
		t.Fatalf("unexpected string input decode: %+v", inputs[0].Image)
	}
	if inputs[1].URL != "https://cdn.example.com/b.png" || inputs[1].Alt != "swatch" || inputs[1].PublicID != "products/b" {
		t.Fatalf("unexpected object input decode: %+v", inputs[1].Image)
	}
}

func TestImageInputTrimsURLWhitespace(t *testing.T) {
	var input imageInput
	if err := json.Unmarshal([]byte(`"  https://cdn.example.com/a.png  "`), &input); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if input.URL != "https://cdn.example.com/a.png" {
		t.Fatalf("expected trimmed URL, got %q", input.URL)
	}
}

func TestImagesFromInputsDropsBlankEntries(t *testing.T) {
	var inputs []imageInput
	payload := `["", {"url": "", "alt": "  "}, "https://cdn.example.com/a.png"]`
	if err := json.Unmarshal([]byte(payload), &inputs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	images := imagesFromInputs(inputs)
	if len(images) != 1 {
		t.Fatalf("expected 1 image after dropping blanks, got %d", len(images))
	}
	if images[0].URL != "https://cdn.example.com/a.png" {
		t.Fatalf("unexpected surviving image: %+v", images[0])
	}
}
