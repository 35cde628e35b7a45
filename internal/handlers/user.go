package handlers

import (
	"context"
	"log"
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

type UserUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type CartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// cartProductRef is the product shape cart entries resolve to.
type cartProductRef struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Price  float64            `json:"price"`
	Images models.ImageList   `json:"images"`
	Rating float64            `json:"rating,omitempty"`
}

type cartItemView struct {
	Product  cartProductRef `json:"product"`
	Quantity int            `json:"quantity"`
}

/* =========================
   ADMIN USER CRUD
========================= */

/*
GET /users
*/
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

/*
GET /users/:id
*/
func GetUserByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

/*
PUT /users/:id
- admin-only name/email/role changes
*/
func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}

		var req UserUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "Name cannot be empty")
				return
			}
			set["name"] = name
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" {
				respondWithError(c, http.StatusBadRequest, route, "Email cannot be empty")
				return
			}
			set["email"] = email
		}
		if req.Role != nil {
			if *req.Role != models.RoleCustomer && *req.Role != models.RoleAdmin {
				respondWithError(c, http.StatusBadRequest, route, "Invalid role")
				return
			}
			set["role"] = *req.Role
		}

		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "No fields to update")
			return
		}
		set["updatedAt"] = time.Now()

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.User
		err = db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, route, "Email already in use")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":    updated.ID.Hex(),
			"name":  updated.Name,
			"email": updated.Email,
			"role":  updated.Role,
		})
	}
}

/*
DELETE /users/:id
*/
func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User removed"})
	}
}

/* =========================
   CART
========================= */

func loadUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.User, error) {
	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	return user, err
}

// upsertCartItem sets the quantity for a product. An existing entry has its
// quantity replaced, not accumulated; a new product is appended.
func upsertCartItem(cart []models.CartItem, productID primitive.ObjectID, quantity int) []models.CartItem {
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	for i := range out {
		if out[i].Product == productID {
			out[i].Quantity = quantity
			return out
		}
	}
	return append(out, models.CartItem{Product: productID, Quantity: quantity})
}

// removeCartItem drops the entry for a product; removing an absent product
// is a no-op.
func removeCartItem(cart []models.CartItem, productID primitive.ObjectID) []models.CartItem {
	out := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.Product == productID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// toggleWishlistEntry removes the product when present and appends it when
// absent; applying it twice yields the original membership.
func toggleWishlistEntry(wishlist []primitive.ObjectID, productID primitive.ObjectID) []primitive.ObjectID {
	exists := false
	out := make([]primitive.ObjectID, 0, len(wishlist)+1)
	for _, id := range wishlist {
		if id == productID {
			exists = true
			continue
		}
		out = append(out, id)
	}
	if !exists {
		out = append(out, productID)
	}
	return out
}

/*
POST /users/cart
- an existing entry for the product gets its quantity replaced, not added
*/
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid productId")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		cart := upsertCartItem(user.Cart, productID, req.Quantity)

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"cart": cart, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[CART] [ERROR] update cart failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

/*
DELETE /users/cart/:productId
- removing an absent product is a no-op
*/
func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /users/cart/:productId"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid productId")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		cart := removeCartItem(user.Cart, productID)

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"cart": cart, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[CART] [ERROR] remove cart item failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

/*
GET /users/cart
- entries resolved to {id, name, price, images}
*/
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		ids := make([]primitive.ObjectID, 0, len(user.Cart))
		for _, item := range user.Cart {
			ids = append(ids, item.Product)
		}

		products, err := productRefsByID(ctx, db, ids, false)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		items := make([]cartItemView, 0, len(user.Cart))
		for _, item := range user.Cart {
			ref, ok := products[item.Product]
			if !ok {
				// dangling product reference, drop it from the view
				continue
			}
			items = append(items, cartItemView{Product: ref, Quantity: item.Quantity})
		}

		c.JSON(http.StatusOK, items)
	}
}

/* =========================
   WISHLIST
========================= */

/*
POST /users/wishlist/:productId
- presence toggle; calling twice restores the original wishlist
*/
func ToggleWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/wishlist/:productId"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid productId")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		wishlist := toggleWishlistEntry(user.Wishlist, productID)

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"wishlist": wishlist, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[WISHLIST] [ERROR] toggle failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, wishlist)
	}
}

/*
GET /users/wishlist
- entries resolved to {id, name, price, images, rating}
*/
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/wishlist"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		products, err := productRefsByID(ctx, db, user.Wishlist, true)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		// keep the user's wishlist order
		refs := make([]cartProductRef, 0, len(user.Wishlist))
		for _, id := range user.Wishlist {
			if ref, ok := products[id]; ok {
				refs = append(refs, ref)
			}
		}

		c.JSON(http.StatusOK, refs)
	}
}

func productRefsByID(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID, withRating bool) (map[primitive.ObjectID]cartProductRef, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]cartProductRef{}, nil
	}

	cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	refs := make(map[primitive.ObjectID]cartProductRef, len(products))
	for _, product := range products {
		ref := cartProductRef{
			ID:     product.ID,
			Name:   product.Name,
			Price:  product.Price,
			Images: product.Images,
		}
		if withRating {
			ref.Rating = product.Rating
		}
		refs[product.ID] = ref
	}
	return refs, nil
}
