package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestReviewViewsResolvesAuthors(t *testing.T) {
	author := primitive.NewObjectID()
	reviews := []models.Review{{User: author, Name: "old name", Rating: 4}}
	names := map[primitive.ObjectID]string{author: "Jane Doe"}

	views := reviewViews(reviews, names)

	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].User.ID != author {
		t.Fatalf("expected author id %v, got %v", author, views[0].User.ID)
	}
	if views[0].User.Name != "Jane Doe" {
		t.Fatalf("expected resolved name, got %q", views[0].User.Name)
	}
	if views[0].Rating != 4 {
		t.Fatalf("expected review fields carried over, got rating %d", views[0].Rating)
	}
}

func TestReviewViewsFallsBackToSnapshotName(t *testing.T) {
	deleted := primitive.NewObjectID()
	reviews := []models.Review{{User: deleted, Name: "John Doe", Rating: 5}}

	views := reviewViews(reviews, map[primitive.ObjectID]string{})

	if views[0].User.Name != "John Doe" {
		t.Fatalf("expected snapshot name for a deleted author, got %q", views[0].User.Name)
	}
}

func TestReviewViewsEmpty(t *testing.T) {
	views := reviewViews(nil, nil)
	if len(views) != 0 {
		t.Fatalf("expected no views, got %d", len(views))
	}
}
