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
)

// ProfileUpdate holds the self-editable user fields. Nil fields are left as is.
type ProfileUpdate struct {
	Name    *string
	Photo   *string
	Phone   *string
	Address *string
}

type UserStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{c: db.Collection(database.Users)}
}

func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.User](ctx, s.c, bson.M{}, opts)
}

// GetByEmail returns nil without error when no user has the email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// CreateIfAbsent inserts u unless a user with the same email exists. An
// existing document is never modified; in that case InsertedID is nil.
func (s *UserStore) CreateIfAbsent(ctx context.Context, u models.User) (InsertResult, error) {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" {
		return InsertResult{}, apperr.Validation("email is required")
	}
	u.ID = primitive.NewObjectID()
	u.Role = models.RoleUser
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": u},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent insert won the unique index.
		return InsertResult{}, nil
	}
	if err != nil {
		return InsertResult{}, fmt.Errorf("insert user: %w", err)
	}
	if res.UpsertedID == nil {
		return InsertResult{}, nil
	}
	return inserted(u.ID), nil
}

// Upsert overwrites the profile fields of the user with u.Email, creating the
// user if needed. The role is only ever set on insert.
func (s *UserStore) Upsert(ctx context.Context, u models.User) (UpdateResult, error) {
	email := NormalizeEmail(u.Email)
	if email == "" {
		return UpdateResult{}, apperr.Validation("email is required")
	}
	now := time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"name":      u.Name,
				"photo":     u.Photo,
				"phone":     u.Phone,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"role":      models.RoleUser,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("upsert user: %w", err)
	}
	if res.UpsertedCount > 0 {
		return UpdateResult{UpsertedCount: res.UpsertedCount}, nil
	}
	return updated(res, "user")
}

func (s *UserStore) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (UpdateResult, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Photo != nil {
		set["photo"] = *upd.Photo
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if len(set) == 0 {
		return UpdateResult{}, apperr.Validation("no fields to update")
	}
	set["updatedAt"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"email": NormalizeEmail(email)}, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update profile: %w", err)
	}
	return updated(res, "user")
}
