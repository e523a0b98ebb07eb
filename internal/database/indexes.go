package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureFoodIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("storedFood").Indexes()

	ownerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "addedByEmail", Value: 1}},
		Options: options.Index().SetName("addedByEmail_index"),
	}
	// purchaseCount descending serves the top-foods leaderboard query.
	leaderboardIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "purchaseCount", Value: -1}},
		Options: options.Index().SetName("purchaseCount_desc"),
	}

	if _, err := indexes.CreateMany(ctx, []mongo.IndexModel{ownerIndex, leaderboardIndex}); err != nil {
		log.Println("EnsureFoodIndexes:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	buyerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "buyerEmail", Value: 1}},
		Options: options.Index().SetName("buyerEmail_index"),
	}

	if _, err := indexes.CreateOne(ctx, buyerIndex); err != nil {
		log.Println("EnsureOrderIndexes:", err)
		return err
	}
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	// Lookup index only. Email uniqueness is not enforced anywhere in this
	// system, so the index must stay non-unique.
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_index"),
	}

	if _, err := indexes.CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes:", err)
		return err
	}
	return nil
}
