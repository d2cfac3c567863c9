package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AuthorName  string             `bson:"authorName" json:"authorName"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	AuthorPhoto string             `bson:"authorPhoto,omitempty" json:"authorPhoto,omitempty"`
	CampName    string             `bson:"campName,omitempty" json:"campName,omitempty"`
	Rating      int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Content     string             `bson:"content" json:"content"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
