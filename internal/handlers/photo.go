package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const photoCollection = "photos"

// GET /photos
func ListPhotos(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /photos"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(photoCollection).Find(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		photos := []bson.M{}
		if err := cursor.All(ctx, &photos); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, photos)
	}
}

// POST /photo
func CreatePhoto(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /photo"
		defer handlePanic(c, route)

		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(photoCollection).InsertOne(ctx, doc)
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
