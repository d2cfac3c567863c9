package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/meditrack-api/internal/database"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/paging"
)

var registrationSearchFields = []string{"campName", "participantName", "participantEmail"}

type RegistrationQuery struct {
	Search string
	Page   paging.Page
}

type RegistrationStore struct {
	c *mongo.Collection
}

func NewRegistrationStore(db *mongo.Database) *RegistrationStore {
	return &RegistrationStore{c: db.Collection(database.Registrations)}
}

// Create inserts r as a new, unpaid, pending registration.
func (s *RegistrationStore) Create(ctx context.Context, r models.Registration) (InsertResult, error) {
	r.ID = primitive.NewObjectID()
	r.ParticipantEmail = NormalizeEmail(r.ParticipantEmail)
	r.PaymentStatus = models.PaymentUnpaid
	r.PaymentTime = nil
	r.PaymentID = ""
	r.Status = models.StatusPending
	r.Feedback = ""
	r.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return InsertResult{}, fmt.Errorf("insert registration: %w", err)
	}
	return inserted(r.ID), nil
}

func (s *RegistrationStore) Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete registration: %w", err)
	}
	return deleted(res, "registration")
}

func (s *RegistrationStore) ByEmail(ctx context.Context, email string) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Registration](ctx, s.c, bson.M{"participantEmail": NormalizeEmail(email)}, opts)
}

func (s *RegistrationStore) List(ctx context.Context, q RegistrationQuery) ([]models.Registration, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Page.Skip()).
		SetLimit(int64(q.Page.Limit))
	return findPage[models.Registration](ctx, s.c, searchFilter(q.Search, registrationSearchFields...), opts)
}

// MarkPaid records a payment. Calling it again with another payment id
// overwrites the reference and time.
func (s *RegistrationStore) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"paymentId":     paymentID,
		"paymentTime":   at.UTC(),
	}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update payment: %w", err)
	}
	return updated(res, "registration")
}

// SetFeedback stores feedback once; a registration that already has
// feedback does not match.
func (s *RegistrationStore) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (UpdateResult, error) {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"feedback": bson.M{"$exists": false}},
			bson.M{"feedback": ""},
		},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update feedback: %w", err)
	}
	return updated(res, "registration without feedback")
}

func (s *RegistrationStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update registration status: %w", err)
	}
	return updated(res, "registration")
}
