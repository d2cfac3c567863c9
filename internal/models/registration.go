package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"

	StatusPending = "Pending"
)

type Registration struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CampID                 primitive.ObjectID `bson:"campId" json:"campId"`
	CampName               string             `bson:"campName" json:"campName"`
	CampFees               float64            `bson:"campFees" json:"campFees"`
	Location               string             `bson:"location" json:"location"`
	HealthcareProfessional string             `bson:"healthcareProfessional" json:"healthcareProfessional"`
	ParticipantName        string             `bson:"participantName" json:"participantName"`
	ParticipantEmail       string             `bson:"participantEmail" json:"participantEmail"`
	Age                    int                `bson:"age,omitempty" json:"age,omitempty"`
	Phone                  string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender                 string             `bson:"gender,omitempty" json:"gender,omitempty"`
	EmergencyContact       string             `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	PaymentStatus          string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentTime            *time.Time         `bson:"paymentTime,omitempty" json:"paymentTime,omitempty"`
	PaymentID              string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status                 string             `bson:"status" json:"status"`
	Feedback               string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
}
