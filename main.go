package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flavorfusion/internal/config"
	"flavorfusion/internal/database"
	"flavorfusion/internal/handlers"
	"flavorfusion/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureFoodIndexes(db); err != nil {
		log.Printf("food index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}

	secret := config.AppEnv.JWTSecret
	ttl := config.AppEnv.TokenTTL

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", handlers.Home())

	r.POST("/jwt", handlers.IssueToken(db, secret, ttl))
	r.POST("/logout", handlers.Logout())

	r.GET("/storedFood", handlers.ListFood(db))
	r.POST("/storedFood", handlers.CreateFood(db))
	r.PATCH("/storedFood/:foodName", handlers.RateFood(db))
	r.GET("/storedFood/:email", middleware.CookieAuth(secret), handlers.FoodByOwner(db))
	r.GET("/topFoods", handlers.TopFoods(db))
	r.GET("/storedFood/food/:id", handlers.GetFood(db))
	r.PATCH("/storedFood/foodCount/:id", handlers.AdjustFoodCount(db))
	r.PATCH("/storedFood/food/:id", handlers.UpdateFood(db))

	r.POST("/user", handlers.CreateUser(db))
	r.GET("/users", handlers.ListUsers(db))

	r.GET("/orders/:email", middleware.CookieAuth(secret), handlers.OrdersByBuyer(db))
	r.DELETE("/orders/:id", handlers.DeleteOrder(db))
	r.POST("/order", handlers.CreateOrder(db))

	r.GET("/photos", handlers.ListPhotos(db))
	r.POST("/photo", handlers.CreatePhoto(db))

	r.Run(":" + config.AppEnv.Port)
}
