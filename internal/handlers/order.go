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

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type OrderCreateRequest struct {
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	ShippingPrice   float64                `json:"shippingPrice" binding:"gte=0"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// canCancelOrder reports whether a customer may still cancel the order.
// Shipped, delivered and already-cancelled orders are final.
func canCancelOrder(status string) bool {
	return status == models.OrderStatusPending || status == models.OrderStatusPaid
}

/*
POST /orders
- items are snapshotted from the current product documents: name, price
  and first image are frozen at order time
*/
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req OrderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ids := make([]primitive.ObjectID, 0, len(req.Items))
		for _, item := range req.Items {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "Invalid productId: "+item.ProductID)
				return
			}
			ids = append(ids, id)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		byID := make(map[primitive.ObjectID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		itemsPrice := 0.0
		for i, reqItem := range req.Items {
			product, ok := byID[ids[i]]
			if !ok {
				respondWithError(c, http.StatusBadRequest, route, "Product not found: "+reqItem.ProductID)
				return
			}
			item := models.OrderItem{
				Product:  product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Quantity: reqItem.Quantity,
			}
			if len(product.Images) > 0 {
				item.Image = product.Images[0].URL
			}
			items = append(items, item)
			itemsPrice += product.Price * float64(reqItem.Quantity)
		}

		order := models.Order{
			ID:              primitive.NewObjectID(),
			User:            userID,
			Items:           items,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			ItemsPrice:      itemsPrice,
			ShippingPrice:   req.ShippingPrice,
			TotalPrice:      itemsPrice + req.ShippingPrice,
			Status:          models.OrderStatusPending,
			CreatedAt:       time.Now(),
		}

		if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

/*
GET /orders/myorders
*/
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/myorders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"user": userID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

/*
GET /orders
- admin listing across all users
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// findOrder fetches an order and enforces ownership: owners and admins
// can see it, anyone else gets a 404-shaped "not found".
func findOrder(c *gin.Context, db *mongo.Database, route string) (models.Order, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusNotFound, route, "Order not found")
		return models.Order{}, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var order models.Order
	err = db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		respondWithError(c, http.StatusNotFound, route, "Order not found")
		return models.Order{}, false
	}
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "Server error")
		return models.Order{}, false
	}

	userID, ok := currentUserID(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
		return models.Order{}, false
	}
	if order.User != userID && c.GetString("role") != models.RoleAdmin {
		respondWithError(c, http.StatusForbidden, route, "Not allowed to view this order")
		return models.Order{}, false
	}

	return order, true
}

/*
GET /orders/:id
*/
func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		order, ok := findOrder(c, db, route)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func updateOrderFields(c *gin.Context, db *mongo.Database, route string, orderID primitive.ObjectID, set bson.M) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var updated models.Order
	err := db.Collection("orders").FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		respondWithError(c, http.StatusNotFound, route, "Order not found")
		return
	}
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "Server error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

/*
PUT /orders/:id/pay
*/
func PayOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/pay"
		defer handlePanic(c, route)

		order, ok := findOrder(c, db, route)
		if !ok {
			return
		}

		if order.Status != models.OrderStatusPending {
			respondWithError(c, http.StatusBadRequest, route, "Order is not awaiting payment")
			return
		}

		now := time.Now()
		updateOrderFields(c, db, route, order.ID, bson.M{
			"status": models.OrderStatusPaid,
			"paidAt": now,
		})
	}
}

/*
PUT /orders/:id/deliver
- admin only
*/
func DeliverOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/deliver"
		defer handlePanic(c, route)

		order, ok := findOrder(c, db, route)
		if !ok {
			return
		}

		now := time.Now()
		updateOrderFields(c, db, route, order.ID, bson.M{
			"status":      models.OrderStatusDelivered,
			"deliveredAt": now,
		})
	}
}

/*
PUT /orders/:id/status
- admin only, free transition between the known statuses
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/status"
		defer handlePanic(c, route)

		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid order status")
			return
		}

		order, ok := findOrder(c, db, route)
		if !ok {
			return
		}

		set := bson.M{"status": req.Status}
		now := time.Now()
		switch req.Status {
		case models.OrderStatusPaid:
			set["paidAt"] = now
		case models.OrderStatusDelivered:
			set["deliveredAt"] = now
		}

		updateOrderFields(c, db, route, order.ID, set)
	}
}

/*
PUT /orders/:id/cancel
- customers can only back out before shipment
*/
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/cancel"
		defer handlePanic(c, route)

		order, ok := findOrder(c, db, route)
		if !ok {
			return
		}

		if !canCancelOrder(order.Status) {
			respondWithError(c, http.StatusBadRequest, route, "Order can no longer be cancelled")
			return
		}

		updateOrderFields(c, db, route, order.ID, bson.M{
			"status": models.OrderStatusCancelled,
		})
	}
}
