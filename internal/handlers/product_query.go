package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productSearchParams struct {
	Keyword    string
	CategoryID string
	MinPrice   string
	MaxPrice   string
}

func productSearchFromQuery(c *gin.Context) productSearchParams {
	return productSearchParams{
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("category"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
	}
}

// buildProductFilter composes the search predicate. Provided filters are ANDed
// and absent ones are omitted. The keyword matches the product name as a
// case-insensitive literal substring. The price range only applies when both
// bounds are present; a lone bound is ignored. publicOnly restricts results to
// active products; the admin listing passes false and sees everything.
func buildProductFilter(params productSearchParams, publicOnly bool) (bson.M, error) {
	filter := bson.M{}

	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
	}

	if raw := strings.TrimSpace(params.CategoryID); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %s", raw)
		}
		filter["category"] = categoryID
	}

	minRaw := strings.TrimSpace(params.MinPrice)
	maxRaw := strings.TrimSpace(params.MaxPrice)
	if minRaw != "" && maxRaw != "" {
		minPrice, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minPrice: %s", minRaw)
		}
		maxPrice, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid maxPrice: %s", maxRaw)
		}
		filter["price"] = bson.M{"$gte": minPrice, "$lte": maxPrice}
	}

	if publicOnly {
		filter["isActive"] = true
	}

	return filter, nil
}
