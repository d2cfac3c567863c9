package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Camp struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CampName               string             `bson:"campName" json:"campName"`
	Image                  string             `bson:"image,omitempty" json:"image,omitempty"`
	DateAndTime            string             `bson:"dateAndTime" json:"dateAndTime"`
	Location               string             `bson:"location" json:"location"`
	HealthcareProfessional string             `bson:"healthcareProfessional" json:"healthcareProfessional"`
	CampFees               float64            `bson:"campFees" json:"campFees"`
	ParticipantCount       int64              `bson:"participantCount" json:"participantCount"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	OrganizerEmail         string             `bson:"organizerEmail" json:"organizerEmail"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
}

// CampPatch holds the fields an admin may change. Nil fields are left as is.
type CampPatch struct {
	CampName               *string  `json:"campName"`
	Image                  *string  `json:"image"`
	DateAndTime            *string  `json:"dateAndTime"`
	Location               *string  `json:"location"`
	HealthcareProfessional *string  `json:"healthcareProfessional"`
	CampFees               *float64 `json:"campFees" binding:"omitempty,gte=0"`
	Description            *string  `json:"description"`
}
