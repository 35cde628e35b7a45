package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type ReviewCreateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// hasReviewed reports whether the user already has a review in the list.
func hasReviewed(reviews []models.Review, userID primitive.ObjectID) bool {
	for _, review := range reviews {
		if review.User == userID {
			return true
		}
	}
	return false
}

/*
POST /products/:id/reviews
- one review per user; rating/numReviews reaggregated on every append
*/
func CreateProductReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/:id/reviews"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		var req ReviewCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		reviewerName := c.GetString("userName")

		ctx, cancel := requestContext(c)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		if hasReviewed(product.Reviews, userID) {
			respondWithError(c, http.StatusBadRequest, route, "Product already reviewed")
			return
		}

		review := models.Review{
			User:      userID,
			Name:      reviewerName,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		}
		rating, numReviews := recalcRating(append(product.Reviews, review))

		// The filter re-checks the reviewer so two concurrent first reviews
		// from the same user cannot both land. rating/numReviews derive from
		// the snapshot read above: concurrent reviews by different users can
		// leave the aggregates one review behind until the next review
		// mutation re-runs recalcRating over the full list.
		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": id, "reviews.user": bson.M{"$ne": userID}},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set": bson.M{
					"rating":     rating,
					"numReviews": numReviews,
					"updatedAt":  time.Now(),
				},
			},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Product already reviewed")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Review added"})
	}
}
