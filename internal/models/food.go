package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Food carries the fields the derived-field updates read back. Documents in
// the storedFood collection are schemaless; reads that must return them as
// found go through bson.M instead of this struct.
type Food struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Quantity         int32              `bson:"quantity" json:"quantity"`
	Price            float64            `bson:"price" json:"price"`
	PurchaseCount    int32              `bson:"purchaseCount" json:"purchaseCount"`
	TotalRating      int32              `bson:"totalRating" json:"totalRating"`
	TotalRatingCount int32              `bson:"totalRatingCount" json:"totalRatingCount"`
	AverageRating    float64            `bson:"averageRating" json:"averageRating"`
	AddedByEmail     string             `bson:"addedByEmail" json:"addedByEmail"`
}
