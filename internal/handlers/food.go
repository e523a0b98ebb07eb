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
	"go.mongodb.org/mongo-driver/mongo/options"

	"flavorfusion/internal/middleware"
	"flavorfusion/internal/models"
)

const foodCollection = "storedFood"

// GET /storedFood
func ListFood(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /storedFood"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(foodCollection).Find(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		foods := []bson.M{}
		if err := cursor.All(ctx, &foods); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, foods)
	}
}

// POST /storedFood
//
// The document is stored close to verbatim; only the counter fields are
// coerced to numeric types first.
func CreateFood(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /storedFood"
		defer handlePanic(c, route)

		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		coerceFoodDocument(doc)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(foodCollection).InsertOne(ctx, doc)
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

// GET /storedFood/food/:id
func GetFood(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /storedFood/food/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var food bson.M
		err = db.Collection(foodCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&food)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "food item not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, food)
	}
}

// GET /topFoods
//
// Fixed-size leaderboard: the six most purchased items. Relative order of
// ties is whatever the server returns.
func TopFoods(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /topFoods"
		defer handlePanic(c, route)

		findOptions := topFoodsFindOptions()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(foodCollection).Find(ctx, bson.M{}, findOptions)
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		foods := []bson.M{}
		if err := cursor.All(ctx, &foods); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, foods)
	}
}

// GET /storedFood/:email, owner-scoped, behind CookieAuth.
func FoodByOwner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /storedFood/:email"
		defer handlePanic(c, route)

		email := c.Param("email")
		// Ownership check, not authentication: a valid session for the
		// wrong user is forbidden, never unauthorised.
		if middleware.EmailFromContext(c) != email {
			respondWithError(c, http.StatusForbidden, route, "forbidden access")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(foodCollection).Find(ctx, bson.M{"addedByEmail": email})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		foods := []bson.M{}
		if err := cursor.All(ctx, &foods); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, foods)
	}
}

// topFoodsFindOptions caps the leaderboard at six items, most purchased
// first. Ties land in whatever order the server returns them.
func topFoodsFindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "purchaseCount", Value: -1}}).
		SetLimit(6)
}

// No binding tags: a zero rating is a valid submission and input schema
// validation is deliberately absent.
type rateFoodRequest struct {
	Rating int32 `json:"rating"`
}

// PATCH /storedFood/:foodName
//
// Read-modify-write on the rating counters, keyed by the food's name.
// Concurrent submissions against the same item can overwrite each other;
// the update is a plain $set, not an atomic increment.
func RateFood(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /storedFood/:foodName"
		defer handlePanic(c, route)

		var req rateFoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var food models.Food
		err := db.Collection(foodCollection).
			FindOne(ctx, bson.M{"name": c.Param("foodName")}).
			Decode(&food)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "food item not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		newTotal, newCount, newAverage := applyRating(food.TotalRating, food.TotalRatingCount, req.Rating)

		res, err := db.Collection(foodCollection).UpdateByID(ctx, food.ID, bson.M{
			"$set": bson.M{
				"totalRating":      newTotal,
				"totalRatingCount": newCount,
				"averageRating":    newAverage,
			},
		})
		if err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		})
	}
}

type adjustFoodCountRequest struct {
	PurchaseCount int32 `json:"purchaseCount"`
}

// PATCH /storedFood/foodCount/:id
//
// Same read-modify-write shape as RateFood: purchaseCount goes up by the
// delta, quantity goes down by it. Quantity has no floor.
func AdjustFoodCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /storedFood/foodCount/:id"
		defer handlePanic(c, route)

		var req adjustFoodCountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var food models.Food
		err = db.Collection(foodCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&food)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "food item not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		newQuantity, newPurchaseCount := applyPurchase(food.Quantity, food.PurchaseCount, req.PurchaseCount)

		res, err := db.Collection(foodCollection).UpdateByID(ctx, food.ID, bson.M{
			"$set": bson.M{
				"purchaseCount": newPurchaseCount,
				"quantity":      newQuantity,
			},
		})
		if err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		})
	}
}

// PATCH /storedFood/food/:id
//
// Overwrite-by-merge: every caller-supplied field is $set onto the existing
// document, unvalidated.
func UpdateFood(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /storedFood/food/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		// _id is immutable in MongoDB.
		delete(doc, "_id")

		if len(doc) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(foodCollection).UpdateByID(ctx, id, bson.M{"$set": doc})
		if err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "food item not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		})
	}
}

func insertedIDHex(res *mongo.InsertOneResult) string {
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex()
	}
	return ""
}
