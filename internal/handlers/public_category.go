package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// categoryView carries a category with its parent resolved to {id, name}.
type categoryView struct {
	models.Category
	Parent *models.CategoryRef `json:"parent"`
}

func decorateCategories(ctx context.Context, db *mongo.Database, categories []models.Category) ([]categoryView, error) {
	ids := make([]primitive.ObjectID, 0)
	seen := map[primitive.ObjectID]struct{}{}
	for _, category := range categories {
		if category.Parent == nil {
			continue
		}
		if _, ok := seen[*category.Parent]; ok {
			continue
		}
		seen[*category.Parent] = struct{}{}
		ids = append(ids, *category.Parent)
	}

	names := map[primitive.ObjectID]string{}
	if len(ids) > 0 {
		cursor, err := db.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		var parents []models.Category
		if err := cursor.All(ctx, &parents); err != nil {
			return nil, err
		}
		for _, parent := range parents {
			names[parent.ID] = parent.Name
		}
	}

	views := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		view := categoryView{Category: category}
		if category.Parent != nil {
			if name, ok := names[*category.Parent]; ok {
				view.Parent = &models.CategoryRef{ID: *category.Parent, Name: name}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func findCategories(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := db.Collection("categories").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

/*
GET /categories
- active categories, name ascending, parent resolved
*/
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := findCategories(ctx, db, bson.M{"isActive": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		views, err := decorateCategories(ctx, db, categories)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		log.Printf("[%s] returning %d categories", route, len(views))
		c.JSON(http.StatusOK, views)
	}
}

/*
GET /categories/:id
- inactive categories stay retrievable by id
*/
func GetCategoryByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var category models.Category
		err = db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		views, err := decorateCategories(ctx, db, []models.Category{category})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, views[0])
	}
}

/*
GET /categories/parents
- active top-level categories
*/
func GetParentCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories/parents"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := findCategories(ctx, db, bson.M{"parent": nil, "isActive": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

/*
GET /categories/parent/:parentId
- active children of a parent category
*/
func GetSubcategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories/parent/:parentId"
		defer handlePanic(c, route)

		parentID, err := primitive.ObjectIDFromHex(c.Param("parentId"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Category not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := findCategories(ctx, db, bson.M{"parent": parentID, "isActive": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}
