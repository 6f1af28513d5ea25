package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the document database.
const (
	CategoryCollection = "categories"
	VideoCollection    = "videos"
	UserCollection     = "users"
)

type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Image         *string            `bson:"image" json:"image"`
	ImagePublicID string             `bson:"imagePublicId,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Video struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description,omitempty" json:"description"`
	CategoryID        primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	VideoURL          string             `bson:"videoUrl" json:"videoUrl"`
	Thumbnail         string             `bson:"thumbnail" json:"thumbnail"`
	VideoPublicID     string             `bson:"videoPublicId" json:"videoPublicId"`
	ThumbnailPublicID string             `bson:"thumbnailPublicId" json:"thumbnailPublicId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
