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
)

// FeedbackStore is append-only.
type FeedbackStore struct {
	c *mongo.Collection
}

func NewFeedbackStore(db *mongo.Database) *FeedbackStore {
	return &FeedbackStore{c: db.Collection(database.Feedback)}
}

func (s *FeedbackStore) Create(ctx context.Context, f models.Feedback) (InsertResult, error) {
	f.ID = primitive.NewObjectID()
	f.AuthorEmail = NormalizeEmail(f.AuthorEmail)
	f.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return InsertResult{}, fmt.Errorf("insert feedback: %w", err)
	}
	return inserted(f.ID), nil
}

func (s *FeedbackStore) List(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Feedback](ctx, s.c, bson.M{}, opts)
}
