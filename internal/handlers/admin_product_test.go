package handlers

import (
	"testing"

	"backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

func TestBuildProductUpdateExplicitZeroOverwrites(t *testing.T) {
	set, err := buildProductUpdate(ProductUpdateRequest{
		Discount:    floatPtr(0),
		IsActive:    boolPtr(false),
		Description: strPtr(""),
	}, "Rose Gel")
	if err != nil {
		t.Fatalf("buildProductUpdate returned error: %v", err)
	}

	if set["discount"] != 0.0 {
		t.Fatalf("expected discount 0 in update, got %v", set["discount"])
	}
	if set["isActive"] != false {
		t.Fatalf("expected isActive false in update, got %v", set["isActive"])
	}
	if set["description"] != "" {
		t.Fatalf("expected empty description in update, got %v", set["description"])
	}
}

func TestBuildProductUpdateOmittedFieldsUntouched(t *testing.T) {
	set, err := buildProductUpdate(ProductUpdateRequest{Name: strPtr("Rose Gel 2")}, "Rose Gel")
	if err != nil {
		t.Fatalf("buildProductUpdate returned error: %v", err)
	}
	if len(set) != 1 || set["name"] != "Rose Gel 2" {
		t.Fatalf("expected only name in update, got %v", set)
	}
}

func TestBuildProductUpdateRejectsEmptyName(t *testing.T) {
	_, err := buildProductUpdate(ProductUpdateRequest{Name: strPtr("   ")}, "Rose Gel")
	if err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestBuildProductUpdateRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -5} {
		_, err := buildProductUpdate(ProductUpdateRequest{Price: floatPtr(price)}, "Rose Gel")
		if err == nil {
			t.Fatalf("expected error for price %v", price)
		}
	}
}

func TestBuildProductUpdateRejectsNegativeStock(t *testing.T) {
	stock := -1
	_, err := buildProductUpdate(ProductUpdateRequest{CountInStock: &stock}, "Rose Gel")
	if err == nil {
		t.Fatal("expected error for negative countInStock")
	}
}

func TestBuildProductUpdateEmptyImagesUntouched(t *testing.T) {
	set, err := buildProductUpdate(ProductUpdateRequest{Images: &[]imageInput{}}, "Rose Gel")
	if err != nil {
		t.Fatalf("buildProductUpdate returned error: %v", err)
	}
	if _, ok := set["images"]; ok {
		t.Fatalf("expected images untouched for empty list, got %v", set["images"])
	}
}

func TestBuildProductUpdateReplacesImages(t *testing.T) {
	set, err := buildProductUpdate(ProductUpdateRequest{
		Images: &[]imageInput{{Image: models.Image{URL: "https://cdn.example.com/a.png"}}},
	}, "Rose Gel")
	if err != nil {
		t.Fatalf("buildProductUpdate returned error: %v", err)
	}

	images, ok := set["images"].(models.ImageList)
	if !ok {
		t.Fatalf("expected normalized image list, got %T", set["images"])
	}
	if len(images) != 1 || images[0].URL != "https://cdn.example.com/a.png" {
		t.Fatalf("unexpected images: %+v", images)
	}
	if images[0].Alt != "Rose Gel" {
		t.Fatalf("expected alt fallback to product name, got %q", images[0].Alt)
	}
}

func TestBuildProductUpdateRenameRenormalizesAgainstNewName(t *testing.T) {
	set, err := buildProductUpdate(ProductUpdateRequest{
		Name:   strPtr("Lavender Oil"),
		Images: &[]imageInput{{Image: models.Image{URL: "not-a-url"}}},
	}, "Rose Gel")
	if err != nil {
		t.Fatalf("buildProductUpdate returned error: %v", err)
	}

	images := set["images"].(models.ImageList)
	if images[0].URL != models.PlaceholderImage("Lavender Oil").URL {
		t.Fatalf("expected placeholder built from the new name, got %q", images[0].URL)
	}
	if images[0].Alt != "Lavender Oil" {
		t.Fatalf("expected alt from the new name, got %q", images[0].Alt)
	}
}
