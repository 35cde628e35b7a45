package handlers

import "testing"

func TestParsePageNumberFallsBackToFirstPage(t *testing.T) {
	tests := []string{"", "abc", "0", "-2", "1.5"}
	for _, raw := range tests {
		if got := parsePageNumber(raw); got != 1 {
			t.Fatalf("parsePageNumber(%q) = %d, expected 1", raw, got)
		}
	}
}

func TestParsePageNumberParsesValidPage(t *testing.T) {
	if got := parsePageNumber("3"); got != 3 {
		t.Fatalf("parsePageNumber(\"3\") = %d, expected 3", got)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		pages int64
	}{
		{0, 0},
		{1, 1},
		{12, 1},
		{13, 2},
		{25, 3},
	}
	for _, tc := range tests {
		if got := pageCount(tc.total, productPageSize); got != tc.pages {
			t.Fatalf("pageCount(%d, %d) = %d, expected %d", tc.total, productPageSize, got, tc.pages)
		}
	}
}
