package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a single customer review embedded in a product document.
type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Specifications holds the free-form cosmetics attributes of a product.
type Specifications struct {
	Weight      string   `bson:"weight,omitempty" json:"weight,omitempty"`
	Dimensions  string   `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	SkinType    string   `bson:"skinType,omitempty" json:"skinType,omitempty"`
	AgeRange    string   `bson:"ageRange,omitempty" json:"ageRange,omitempty"`
	Ingredients []string `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Brand          string             `bson:"brand" json:"brand"`
	Price          float64            `bson:"price" json:"price"`
	OriginalPrice  float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Discount       float64            `bson:"discount,omitempty" json:"discount,omitempty"`
	Category       primitive.ObjectID `bson:"category" json:"category"`
	CountInStock   int                `bson:"countInStock" json:"countInStock"`
	Tags           []string           `bson:"tags" json:"tags"`
	Images         ImageList          `bson:"images" json:"images"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
	Views          int64              `bson:"views" json:"views"`
	Rating         float64            `bson:"rating" json:"rating"`
	NumReviews     int                `bson:"numReviews" json:"numReviews"`
	Reviews        []Review           `bson:"reviews" json:"reviews"`
	Specifications *Specifications    `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedBy      primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
