package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestRecalcRatingEmpty(t *testing.T) {
	rating, numReviews := recalcRating(nil)
	if rating != 0 || numReviews != 0 {
		t.Fatalf("expected 0/0 for no reviews, got %v/%d", rating, numReviews)
	}
}

func TestRecalcRatingSingleReview(t *testing.T) {
	rating, numReviews := recalcRating([]models.Review{{Rating: 4}})
	if rating != 4 || numReviews != 1 {
		t.Fatalf("expected 4/1, got %v/%d", rating, numReviews)
	}
}

func TestRecalcRatingAverages(t *testing.T) {
	rating, numReviews := recalcRating([]models.Review{{Rating: 4}, {Rating: 5}})
	if rating != 4.5 || numReviews != 2 {
		t.Fatalf("expected 4.5/2, got %v/%d", rating, numReviews)
	}
}

func TestRecalcRatingIdempotent(t *testing.T) {
	reviews := []models.Review{{Rating: 3}, {Rating: 4}, {Rating: 5}}
	first, _ := recalcRating(reviews)
	second, _ := recalcRating(reviews)
	if first != second {
		t.Fatalf("expected identical results on re-run, got %v then %v", first, second)
	}
}
