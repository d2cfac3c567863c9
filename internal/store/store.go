// Package store holds one Mongo-backed store per collection. Every mutation
// touches a single document; results pass through updated/deleted so a miss
// is always reported as apperr.KindNotFound.
package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
)

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// InsertResult reports the new document id, or null when nothing was inserted.
type InsertResult struct {
	InsertedID *primitive.ObjectID `json:"insertedId"`
}

func inserted(id primitive.ObjectID) InsertResult {
	return InsertResult{InsertedID: &id}
}

func updated(res *mongo.UpdateResult, what string) (UpdateResult, error) {
	if res == nil || res.MatchedCount == 0 {
		return UpdateResult{}, apperr.NotFound("%s not found", what)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func deleted(res *mongo.DeleteResult, what string) (DeleteResult, error) {
	if res == nil || res.DeletedCount == 0 {
		return DeleteResult{}, apperr.NotFound("%s not found", what)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// searchFilter matches q case-insensitively, as a literal, against any of
// fields. A blank q yields an empty filter so documents missing the fields
// still match.
func searchFilter(q string, fields ...string) bson.M {
	q = strings.TrimSpace(q)
	if q == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// findPage runs the page query and the count concurrently on the shared pool.
func findPage[T any](ctx context.Context, c *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := c.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("find %s: %w", c.Name(), err)
		}
		defer cur.Close(gctx)
		if err := cur.All(gctx, &rows); err != nil {
			return fmt.Errorf("decode %s: %w", c.Name(), err)
		}
		return nil
	})
	g.Go(func() error {
		n, err := c.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count %s: %w", c.Name(), err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if rows == nil {
		rows = make([]T, 0)
	}
	return rows, total, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}
	defer cur.Close(ctx)

	rows := make([]T, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return rows, nil
}

// NormalizeEmail lowercases and trims an address before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
