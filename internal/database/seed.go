package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
)

type seedProduct struct {
	Name         string
	Description  string
	Brand        string
	Price        float64
	Original     float64
	Discount     float64
	Category     string
	CountInStock int
	Tags         []string
	IsFeatured   bool
	Specs        *models.Specifications
}

var seedCategories = []models.Category{
	{Name: "Skincare", Description: "Premium skincare products for all skin types"},
	{Name: "Makeup", Description: "High-quality makeup products"},
	{Name: "Fragrances", Description: "Luxury fragrances and perfumes"},
	{Name: "Hair Care", Description: "Professional hair care products"},
}

var seedProducts = []seedProduct{
	{
		Name:         "Anti-Aging Serum",
		Description:  "Advanced anti-aging serum with retinol and hyaluronic acid. Reduces fine lines and wrinkles while hydrating the skin.",
		Brand:        "AI Beauty",
		Price:        89.99,
		Original:     119.99,
		Discount:     25,
		Category:     "Skincare",
		CountInStock: 50,
		Tags:         []string{"anti-aging", "serum", "premium"},
		IsFeatured:   true,
		Specs: &models.Specifications{
			Weight:      "30ml",
			SkinType:    "All skin types",
			AgeRange:    "25+",
			Ingredients: []string{"Retinol", "Hyaluronic Acid", "Vitamin C"},
		},
	},
	{
		Name:         "Hydrating Face Cream",
		Description:  "Luxurious moisturizing cream with natural botanicals. Perfect for dry and sensitive skin.",
		Brand:        "AI Beauty",
		Price:        49.99,
		Original:     69.99,
		Discount:     29,
		Category:     "Skincare",
		CountInStock: 30,
		Tags:         []string{"moisturizer", "hydrating", "natural"},
		IsFeatured:   true,
		Specs: &models.Specifications{
			Weight:      "50ml",
			SkinType:    "Dry, Sensitive",
			AgeRange:    "All ages",
			Ingredients: []string{"Shea Butter", "Aloe Vera", "Jojoba Oil"},
		},
	},
	{
		Name:         "Vitamin C Brightening Mask",
		Description:  "Brightening face mask enriched with Vitamin C and natural extracts. Reveals radiant, glowing skin.",
		Brand:        "AI Beauty",
		Price:        34.99,
		Original:     44.99,
		Discount:     22,
		Category:     "Skincare",
		CountInStock: 25,
		Tags:         []string{"mask", "brightening", "vitamin-c"},
		Specs: &models.Specifications{
			Weight:      "75ml",
			SkinType:    "All skin types",
			AgeRange:    "18+",
			Ingredients: []string{"Vitamin C", "Niacinamide", "Green Tea Extract"},
		},
	},
	{
		Name:         "Luxury Lipstick Set",
		Description:  "Premium lipstick collection with 5 stunning shades. Long-lasting, highly pigmented formula.",
		Brand:        "AI Makeup",
		Price:        79.99,
		Original:     99.99,
		Discount:     20,
		Category:     "Makeup",
		CountInStock: 20,
		Tags:         []string{"lipstick", "makeup", "luxury"},
		IsFeatured:   true,
		Specs: &models.Specifications{
			Weight:      "5 x 3.5g",
			Ingredients: []string{"Natural Waxes", "Vitamin E", "Jojoba Oil"},
		},
	},
}

// Seed wipes the catalog collections and loads the demo data set: one admin,
// two customers, the base categories, and a handful of featured products.
func Seed(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"orders", "products", "categories", "users"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}

	now := time.Now()

	adminID, err := seedUser(ctx, db, "Admin User", "admin@aicosmetics.com", "admin123", models.RoleAdmin, now)
	if err != nil {
		return err
	}
	if _, err := seedUser(ctx, db, "John Doe", "john@example.com", "123456", models.RoleCustomer, now); err != nil {
		return err
	}
	if _, err := seedUser(ctx, db, "Jane Doe", "jane@example.com", "123456", models.RoleCustomer, now); err != nil {
		return err
	}

	categoryIDs := make(map[string]primitive.ObjectID, len(seedCategories))
	for _, category := range seedCategories {
		category.IsActive = true
		category.CreatedBy = adminID
		category.CreatedAt = now
		category.UpdatedAt = now

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", category.Name, err)
		}
		categoryIDs[category.Name] = res.InsertedID.(primitive.ObjectID)
	}

	for _, seed := range seedProducts {
		categoryID, ok := categoryIDs[seed.Category]
		if !ok {
			return fmt.Errorf("unknown seed category: %s", seed.Category)
		}

		product := models.Product{
			Name:           seed.Name,
			Description:    seed.Description,
			Brand:          seed.Brand,
			Price:          seed.Price,
			OriginalPrice:  seed.Original,
			Discount:       seed.Discount,
			Category:       categoryID,
			CountInStock:   seed.CountInStock,
			Tags:           seed.Tags,
			Images:         models.ImageList{models.PlaceholderImage(seed.Name)},
			IsActive:       true,
			IsFeatured:     seed.IsFeatured,
			Reviews:        []models.Review{},
			Specifications: seed.Specs,
			CreatedBy:      adminID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			return fmt.Errorf("insert product %s: %w", seed.Name, err)
		}
	}

	log.Printf("seed: %d users, %d categories, %d products", 3, len(seedCategories), len(seedProducts))
	return nil
}

func seedUser(ctx context.Context, db *mongo.Database, name, email, password, role string, now time.Time) (primitive.ObjectID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Cart:         []models.CartItem{},
		Wishlist:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user %s: %w", email, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
