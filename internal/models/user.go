package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the credential-bearing slice of a user document. Profiles are
// otherwise free-form and stored exactly as submitted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
}
