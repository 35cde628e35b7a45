package handlers

import (
	"math"
	"strconv"
)

// productPageSize is fixed for both the public and the admin product listings.
const productPageSize = 12

// parsePageNumber interprets the pageNumber query parameter. Anything missing,
// unparsable, or below 1 falls back to the first page.
func parsePageNumber(raw string) int64 {
	if raw == "" {
		return 1
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageCount returns ceil(total/pageSize); 0 when nothing matches.
func pageCount(total, pageSize int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(pageSize)))
}
