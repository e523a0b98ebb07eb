package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"flavorfusion/internal/middleware"
)

const orderCollection = "orders"

// GET /orders/:email, owner-scoped, behind CookieAuth.
func OrdersByBuyer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:email"
		defer handlePanic(c, route)

		email := c.Param("email")
		if middleware.EmailFromContext(c) != email {
			respondWithError(c, http.StatusForbidden, route, "forbidden access")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(orderCollection).Find(ctx, bson.M{"buyerEmail": email})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := []bson.M{}
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// POST /order
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /order"
		defer handlePanic(c, route)

		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(orderCollection).InsertOne(ctx, doc)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"acknowledged": true,
			"insertedId":   insertedIDHex(res),
		})
	}
}

// DELETE /orders/:id
//
// Returns the store's deletion acknowledgement, not the deleted entity.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(orderCollection).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Printf("[%s] delete failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})
	}
}
