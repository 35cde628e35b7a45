package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type CategoryCreateRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Image       *imageInput `json:"image"`
	Parent      *string     `json:"parent"`
	IsActive    *bool       `json:"isActive"`
}

type CategoryUpdateRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Image       *imageInput `json:"image"`
	Parent      *string     `json:"parent"`
	IsActive    *bool       `json:"isActive"`
}

/*
POST /categories
- duplicate names rejected
*/
func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /categories"
		defer handlePanic(c, route)

		var req CategoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "Name is required")
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusBadRequest, route, "Category already exists")
			return
		}

		var parentID *primitive.ObjectID
		if req.Parent != nil && strings.TrimSpace(*req.Parent) != "" {
			parsed, err := primitive.ObjectIDFromHex(strings.TrimSpace(*req.Parent))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "Invalid parent id")
				return
			}
			parentID = &parsed
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		var image *models.Image
		if req.Image != nil {
			normalized := models.NormalizeImage(req.Image.Image, name)
			image = &normalized
		}

		now := time.Now()
		category := models.Category{
			Name:        name,
			Description: req.Description,
			Image:       image,
			Parent:      parentID,
			IsActive:    isActive,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, route, "Category already exists")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		category.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, category)
	}
}

/*
PUT /categories/:id
- only fields present in the body change
*/
func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /categories/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}

		var req CategoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		set := bson.M{}
		name := ""
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "Name cannot be empty")
				return
			}
			set["name"] = name
		}
		if req.Description != nil {
			set["description"] = *req.Description
		}
		if req.Parent != nil {
			// An explicit null or empty parent makes the category top-level.
			if strings.TrimSpace(*req.Parent) == "" {
				set["parent"] = nil
			} else {
				parentID, err := primitive.ObjectIDFromHex(strings.TrimSpace(*req.Parent))
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "Invalid parent id")
					return
				}
				set["parent"] = parentID
			}
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}

		if len(set) == 0 && req.Image == nil {
			respondWithError(c, http.StatusBadRequest, route, "No fields to update")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if req.Image != nil {
			ownerName := name
			if ownerName == "" {
				var existing models.Category
				if err := db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err == nil {
					ownerName = existing.Name
				}
			}
			set["image"] = models.NormalizeImage(req.Image.Image, ownerName)
		}
		set["updatedAt"] = time.Now()

		var updated models.Category
		err = db.Collection("categories").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /categories/:id
- hard delete; products referencing the category keep a dangling reference
  that the read path tolerates
*/
func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /categories/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category removed"})
	}
}
