package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	if len(os.Args) > 1 {
		runCli()
		return
	}

	serve()
}

func runCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Reset the database and load the demo catalog and users",
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := database.Connect(config.AppEnv.MongoURI)
					if err != nil {
						return err
					}
					defer client.Disconnect(ctx)

					if err := database.Seed(ctx, client.Database(config.AppEnv.DBName)); err != nil {
						return err
					}
					log.Println("✅ Seed complete")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve() {
	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("⚠️ category index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	secret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL

	r := gin.Default()
	r.Static("/public", config.AppEnv.PublicDir)

	r.POST("/auth/register", handlers.Register(db, secret, accessTTL))
	r.POST("/auth/login", handlers.Login(db, secret, accessTTL))
	r.GET("/auth/profile", middleware.Protect(secret), handlers.GetProfile(db))
	r.PUT("/auth/profile", middleware.Protect(secret), handlers.UpdateProfile(db))

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/categories/parents", handlers.GetParentCategories(db))
	r.GET("/categories/parent/:parentId", handlers.GetSubcategories(db))
	r.GET("/categories/:id", handlers.GetCategoryByID(db))
	r.POST("/categories", middleware.AdminAuth(secret), handlers.CreateCategory(db))
	r.PUT("/categories/:id", middleware.AdminAuth(secret), handlers.UpdateCategory(db))
	r.DELETE("/categories/:id", middleware.AdminAuth(secret), handlers.DeleteCategory(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/featured", handlers.GetFeaturedProducts(db))
	r.GET("/products/admin", middleware.AdminAuth(secret), handlers.GetAdminProducts(db))
	r.POST("/products/upload", middleware.AdminAuth(secret), handlers.UploadProductImages())
	r.GET("/products/:id", handlers.GetProductByID(db))
	r.POST("/products", middleware.AdminAuth(secret), handlers.CreateProduct(db))
	r.PUT("/products/:id", middleware.AdminAuth(secret), handlers.UpdateProduct(db))
	r.DELETE("/products/:id", middleware.AdminAuth(secret), handlers.DeleteProduct(db))
	r.POST("/products/:id/reviews", middleware.Protect(secret), handlers.CreateProductReview(db))

	users := r.Group("/users")
	users.Use(middleware.Protect(secret))
	{
		users.POST("/cart", handlers.AddToCart(db))
		users.GET("/cart", handlers.GetCart(db))
		users.DELETE("/cart/:productId", handlers.RemoveFromCart(db))
		users.POST("/wishlist/:productId", handlers.ToggleWishlist(db))
		users.GET("/wishlist", handlers.GetWishlist(db))
	}

	adminUsers := r.Group("/users")
	adminUsers.Use(middleware.AdminAuth(secret))
	{
		adminUsers.GET("", handlers.GetUsers(db))
		adminUsers.GET("/:id", handlers.GetUserByID(db))
		adminUsers.PUT("/:id", handlers.UpdateUser(db))
		adminUsers.DELETE("/:id", handlers.DeleteUser(db))
	}

	orders := r.Group("/orders")
	orders.Use(middleware.Protect(secret))
	{
		orders.POST("", handlers.CreateOrder(db))
		orders.GET("/myorders", handlers.GetMyOrders(db))
		orders.GET("", middleware.AdminAuth(secret), handlers.GetOrders(db))
		orders.GET("/:id", handlers.GetOrderByID(db))
		orders.PUT("/:id/pay", handlers.PayOrder(db))
		orders.PUT("/:id/deliver", middleware.AdminAuth(secret), handlers.DeliverOrder(db))
		orders.PUT("/:id/status", middleware.AdminAuth(secret), handlers.UpdateOrderStatus(db))
		orders.PUT("/:id/cancel", handlers.CancelOrder(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
