package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestHasReviewed(t *testing.T) {
	reviewer := primitive.NewObjectID()
	reviews := []models.Review{
		{User: primitive.NewObjectID(), Rating: 5},
		{User: reviewer, Rating: 3},
	}

	if !hasReviewed(reviews, reviewer) {
		t.Fatal("expected reviewer to be detected")
	}
	if hasReviewed(reviews, primitive.NewObjectID()) {
		t.Fatal("expected unknown user not to be detected")
	}
	if hasReviewed(nil, reviewer) {
		t.Fatal("expected no match against an empty review list")
	}
}
