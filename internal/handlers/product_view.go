package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type userRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

type reviewUserRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// reviewView is a review with its author resolved to {id, name}.
type reviewView struct {
	models.Review
	User reviewUserRef `json:"user"`
}

// productView is a product with its references resolved for responses: the
// category as {id, name}, each review's author as {id, name} and, on admin
// listings, the creator as {id, name, email}. A dangling category resolves to
// an empty ref rather than failing the request.
type productView struct {
	models.Product
	Category  models.CategoryRef `json:"category"`
	Reviews   []reviewView       `json:"reviews"`
	CreatedBy *userRef           `json:"createdBy,omitempty"`
}

// reviewViews resolves review authors against a name lookup. An author whose
// account no longer exists keeps the name snapshotted on the review.
func reviewViews(reviews []models.Review, names map[primitive.ObjectID]string) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		name, ok := names[review.User]
		if !ok {
			name = review.Name
		}
		views = append(views, reviewView{
			Review: review,
			User:   reviewUserRef{ID: review.User, Name: name},
		})
	}
	return views
}

func decorateProducts(ctx context.Context, db *mongo.Database, products []models.Product, withCreator bool) ([]productView, error) {
	categoryNames, err := categoryNamesByID(ctx, db, products)
	if err != nil {
		return nil, err
	}

	reviewerNames, err := reviewerNamesByID(ctx, db, products)
	if err != nil {
		return nil, err
	}

	var creators map[primitive.ObjectID]userRef
	if withCreator {
		creators, err = creatorsByID(ctx, db, products)
		if err != nil {
			return nil, err
		}
	}

	views := make([]productView, 0, len(products))
	for _, product := range products {
		view := productView{
			Product: product,
			Reviews: reviewViews(product.Reviews, reviewerNames),
		}
		if name, ok := categoryNames[product.Category]; ok {
			view.Category = models.CategoryRef{ID: product.Category, Name: name}
		}
		if withCreator {
			if ref, ok := creators[product.CreatedBy]; ok {
				view.CreatedBy = &ref
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func categoryNamesByID(ctx context.Context, db *mongo.Database, products []models.Product) (map[primitive.ObjectID]string, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := map[primitive.ObjectID]struct{}{}
	for _, product := range products {
		if product.Category.IsZero() {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		ids = append(ids, product.Category)
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	cursor, err := db.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}

func reviewerNamesByID(ctx context.Context, db *mongo.Database, products []models.Product) (map[primitive.ObjectID]string, error) {
	ids := make([]primitive.ObjectID, 0)
	seen := map[primitive.ObjectID]struct{}{}
	for _, product := range products {
		for _, review := range product.Reviews {
			if review.User.IsZero() {
				continue
			}
			if _, ok := seen[review.User]; ok {
				continue
			}
			seen[review.User] = struct{}{}
			ids = append(ids, review.User)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	cursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}

func creatorsByID(ctx context.Context, db *mongo.Database, products []models.Product) (map[primitive.ObjectID]userRef, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := map[primitive.ObjectID]struct{}{}
	for _, product := range products {
		if product.CreatedBy.IsZero() {
			continue
		}
		if _, ok := seen[product.CreatedBy]; ok {
			continue
		}
		seen[product.CreatedBy] = struct{}{}
		ids = append(ids, product.CreatedBy)
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]userRef{}, nil
	}

	cursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	refs := make(map[primitive.ObjectID]userRef, len(users))
	for _, user := range users {
		refs[user.ID] = userRef{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return refs, nil
}
