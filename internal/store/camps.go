package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/database"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/paging"
)

// CampSortFields lists the fields GET /camps may sort on.
var CampSortFields = map[string]bool{
	"campName":         true,
	"campFees":         true,
	"participantCount": true,
	"dateAndTime":      true,
	"createdAt":        true,
}

var campSearchFields = []string{"campName", "healthcareProfessional", "location"}

type CampQuery struct {
	Search string
	SortBy string
	Desc   bool
	Page   paging.Page
}

type CampStore struct {
	c *mongo.Collection
}

func NewCampStore(db *mongo.Database) *CampStore {
	return &CampStore{c: db.Collection(database.Camps)}
}

// List returns one page of camps matching q and the total match count.
// Without SortBy the natural storage order is kept.
func (s *CampStore) List(ctx context.Context, q CampQuery) ([]models.Camp, int64, error) {
	opts := options.Find().SetSkip(q.Page.Skip()).SetLimit(int64(q.Page.Limit))
	if q.SortBy != "" {
		if !CampSortFields[q.SortBy] {
			return nil, 0, apperr.Validation("cannot sort by %q", q.SortBy)
		}
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.SortBy, Value: dir}})
	}
	return findPage[models.Camp](ctx, s.c, searchFilter(q.Search, campSearchFields...), opts)
}

// Get returns nil without error when no camp has the id.
func (s *CampStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp models.Camp
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&camp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find camp: %w", err)
	}
	return &camp, nil
}

// Popular returns the n camps with the most participants.
func (s *CampStore) Popular(ctx context.Context, n int64) ([]models.Camp, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "participantCount", Value: -1}}).
		SetLimit(n)
	return findAll[models.Camp](ctx, s.c, bson.M{}, opts)
}

func (s *CampStore) ByOrganizer(ctx context.Context, email string) ([]models.Camp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Camp](ctx, s.c, bson.M{"organizerEmail": NormalizeEmail(email)}, opts)
}

// Create inserts camp with a fresh id and a zero participant count.
func (s *CampStore) Create(ctx context.Context, camp models.Camp) (InsertResult, error) {
	camp.ID = primitive.NewObjectID()
	camp.ParticipantCount = 0
	camp.OrganizerEmail = NormalizeEmail(camp.OrganizerEmail)
	if camp.CreatedAt.IsZero() {
		camp.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, camp); err != nil {
		return InsertResult{}, fmt.Errorf("insert camp: %w", err)
	}
	return inserted(camp.ID), nil
}

// Update merges the non-nil fields of patch into the camp.
func (s *CampStore) Update(ctx context.Context, id primitive.ObjectID, patch models.CampPatch) (UpdateResult, error) {
	set := bson.M{}
	if patch.CampName != nil {
		set["campName"] = *patch.CampName
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.DateAndTime != nil {
		set["dateAndTime"] = *patch.DateAndTime
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.HealthcareProfessional != nil {
		set["healthcareProfessional"] = *patch.HealthcareProfessional
	}
	if patch.CampFees != nil {
		set["campFees"] = *patch.CampFees
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if len(set) == 0 {
		return UpdateResult{}, apperr.Validation("no fields to update")
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update camp: %w", err)
	}
	return updated(res, "camp")
}

func (s *CampStore) Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete camp: %w", err)
	}
	return deleted(res, "camp")
}

// IncrementParticipants atomically adds one to the participant count.
func (s *CampStore) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"participantCount": 1}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("increment participants: %w", err)
	}
	return updated(res, "camp")
}
