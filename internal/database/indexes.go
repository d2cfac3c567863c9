package database

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on. CreateMany is
// a no-op for indexes that already exist with the same definition. Problems
// are collected so one bad collection does not hide another.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for coll, models := range indexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		Users: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		},
		Camps: {
			{
				Keys:    bson.D{{Key: "participantCount", Value: -1}},
				Options: options.Index().SetName("idx_participant_count"),
			},
			{
				Keys:    bson.D{{Key: "organizerEmail", Value: 1}},
				Options: options.Index().SetName("idx_organizer_email"),
			},
		},
		Registrations: {
			{
				Keys:    bson.D{{Key: "participantEmail", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_participant_created"),
			},
		},
		Feedback: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_created"),
			},
		},
	}
}
