package handlers

import "backend/internal/models"

// recalcRating derives the aggregate rating and review count from the review
// list. It is invoked after every review mutation and is safe to re-run.
func recalcRating(reviews []models.Review) (rating float64, numReviews int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}
