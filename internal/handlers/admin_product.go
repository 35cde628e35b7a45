package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/config"
	"backend/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductCreateRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	Brand          string                 `json:"brand" binding:"required"`
	Price          float64                `json:"price" binding:"required,gt=0"`
	OriginalPrice  float64                `json:"originalPrice"`
	Discount       float64                `json:"discount"`
	Category       string                 `json:"category" binding:"required"`
	CountInStock   int                    `json:"countInStock" binding:"gte=0"`
	Tags           []string               `json:"tags"`
	Images         []imageInput           `json:"images"`
	IsActive       *bool                  `json:"isActive"`
	IsFeatured     *bool                  `json:"isFeatured"`
	Specifications *models.Specifications `json:"specifications"`
}

// ProductUpdateRequest models a partial update. Every field is a pointer so an
// explicit zero value (0, false, "") is distinguishable from an omitted key
// and overwrites the stored value.
type ProductUpdateRequest struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Brand          *string                `json:"brand"`
	Price          *float64               `json:"price"`
	OriginalPrice  *float64               `json:"originalPrice"`
	Discount       *float64               `json:"discount"`
	Category       *string                `json:"category"`
	CountInStock   *int                   `json:"countInStock"`
	Tags           *[]string              `json:"tags"`
	Images         *[]imageInput          `json:"images"`
	IsActive       *bool                  `json:"isActive"`
	IsFeatured     *bool                  `json:"isFeatured"`
	Specifications *models.Specifications `json:"specifications"`
}

// buildProductUpdate turns a partial update into a $set document.
// currentName is the stored product name, used when images are renormalized
// without a simultaneous rename.
func buildProductUpdate(req ProductUpdateRequest, currentName string) (bson.M, error) {
	set := bson.M{}

	productName := currentName
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		set["name"] = name
		productName = name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Brand != nil {
		set["brand"] = *req.Brand
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be greater than 0")
		}
		set["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		set["originalPrice"] = *req.OriginalPrice
	}
	if req.Discount != nil {
		set["discount"] = *req.Discount
	}
	if req.CountInStock != nil {
		if *req.CountInStock < 0 {
			return nil, fmt.Errorf("countInStock must be zero or greater")
		}
		set["countInStock"] = *req.CountInStock
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		set["isFeatured"] = *req.IsFeatured
	}
	if req.Specifications != nil {
		set["specifications"] = *req.Specifications
	}
	if req.Images != nil {
		// A non-empty list replaces the stored images wholesale; an empty or
		// all-blank list leaves them untouched.
		if images := imagesFromInputs(*req.Images); len(images) > 0 {
			set["images"] = models.NormalizeImages(images, productName)
		}
	}

	return set, nil
}

/* =======================
   GET (ADMIN) – LIST
======================= */

/*
GET /products/admin?keyword&category&minPrice&maxPrice&pageNumber
- same filter shape as the public search, but includes inactive products and
  resolves the creator
*/
func GetAdminProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/admin"
		defer handlePanic(c, route)

		filter, err := buildProductFilter(productSearchFromQuery(c), false)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		page := parsePageNumber(c.Query("pageNumber"))

		ctx, cancel := requestContext(c)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		opts := options.Find().
			SetSkip(productPageSize * (page - 1)).
			SetLimit(productPageSize).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		views, err := decorateProducts(ctx, db, products, true)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": views,
			"page":     page,
			"pages":    pageCount(total, productPageSize),
			"total":    total,
		})
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		categoryID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.Category))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Category not found")
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"_id": categoryID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Category not found")
			return
		}

		name := strings.TrimSpace(req.Name)
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		isFeatured := false
		if req.IsFeatured != nil {
			isFeatured = *req.IsFeatured
		}

		now := time.Now()
		product := models.Product{
			Name:           name,
			Description:    req.Description,
			Brand:          req.Brand,
			Price:          req.Price,
			OriginalPrice:  req.OriginalPrice,
			Discount:       req.Discount,
			Category:       categoryID,
			CountInStock:   req.CountInStock,
			Tags:           req.Tags,
			Images:         models.NormalizeImages(imagesFromInputs(req.Images), name),
			IsActive:       isActive,
			IsFeatured:     isFeatured,
			Reviews:        []models.Review{},
			Specifications: req.Specifications,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		set, err := buildProductUpdate(req, existing.Name)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if req.Category != nil {
			categoryID, err := primitive.ObjectIDFromHex(strings.TrimSpace(*req.Category))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "Category not found")
				return
			}
			set["category"] = categoryID
		}

		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "No fields to update")
			return
		}
		set["updatedAt"] = time.Now()

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		// locally stored uploads carry their relative path in publicId
		for _, image := range existing.Images {
			if strings.HasPrefix(image.PublicID, "uploads/") {
				if err := safeDeleteUpload(config.AppEnv.PublicDir, image.PublicID); err != nil {
					log.Println("DeleteProduct upload cleanup:", err)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
	}
}
