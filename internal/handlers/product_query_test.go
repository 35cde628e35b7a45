package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterEmptyParams(t *testing.T) {
	filter, err := buildProductFilter(productSearchParams{}, false)
	if err != nil {
		t.Fatalf("buildProductFilter returned error: %v", err)
	}
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildProductFilterPublicOnlyAddsIsActive(t *testing.T) {
	filter, err := buildProductFilter(productSearchParams{}, true)
	if err != nil {
		t.Fatalf("buildProductFilter returned error: %v", err)
	}
	if filter["isActive"] != true {
		t.Fatalf("expected isActive=true in public filter, got %v", filter)
	}
}

func TestBuildProductFilterKeywordQuotesRegexMeta(t *testing.T) {
	filter, err := buildProductFilter(productSearchParams{Keyword: "serum (2.0)"}, false)
	if err != nil {
		t.Fatalf("buildProductFilter returned error: %v", err)
	}
	name, ok := filter["name"].(bson.M)
	if !ok {
		t.Fatalf("expected name predicate, got %v", filter["name"])
	}
	if name["$regex"] != `serum \(2\.0\)` {
		t.Fatalf("expected quoted regex, got %v", name["$regex"])
	}
	if name["$options"] != "i" {
		t.Fatalf("expected case-insensitive option, got %v", name["$options"])
	}
}

func TestBuildProductFilterCategory(t *testing.T) {
	id := primitive.NewObjectID()
	filter, err := buildProductFilter(productSearchParams{CategoryID: id.Hex()}, false)
	if err != nil {
		t.Fatalf("buildProductFilter returned error: %v", err)
	}
	if filter["category"] != id {
		t.Fatalf("expected category %v, got %v", id, filter["category"])
	}
}

func TestBuildProductFilterInvalidCategory(t *testing.T) {
	_, err := buildProductFilter(productSearchParams{CategoryID: "not-hex"}, false)
	if err == nil {
		t.Fatal("expected error for malformed category id")
	}
}

func TestBuildProductFilterIgnoresLonePriceBound(t *testing.T) {
	tests := []productSearchParams{
		{MinPrice: "10"},
		{MaxPrice: "50"},
	}
	for _, params := range tests {
		filter, err := buildProductFilter(params, false)
		if err != nil {
			t.Fatalf("buildProductFilter returned error: %v", err)
		}
		if _, ok := filter["price"]; ok {
			t.Fatalf("expected no price predicate for %+v, got %v", params, filter["price"])
		}
	}
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter, err := buildProductFilter(productSearchParams{MinPrice: "10", MaxPrice: "49.9"}, false)
	if err != nil {
		t.Fatalf("buildProductFilter returned error: %v", err)
	}
	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price predicate, got %v", filter["price"])
	}
	if price["$gte"] != 10.0 || price["$lte"] != 49.9 {
		t.Fatalf("expected bounds [10, 49.9], got %v", price)
	}
}

func TestBuildProductFilterInvalidPrice(t *testing.T) {
	_, err := buildProductFilter(productSearchParams{MinPrice: "abc", MaxPrice: "50"}, false)
	if err == nil {
		t.Fatal("expected error for unparsable minPrice")
	}
}
