package store

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/paging"
)

func updateReply(matched, modified int32) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: modified},
	)
}

func TestCampStore_IncrementParticipants(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Matched", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		mt.AddMockResponses(updateReply(1, 1))

		res, err := s.IncrementParticipants(context.Background(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("IncrementParticipants returned error: %v", err)
		}
		if res.MatchedCount != 1 || res.ModifiedCount != 1 {
			mt.Errorf("unexpected result %+v", res)
		}
	})

	mt.Run("UnknownID", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		mt.AddMockResponses(updateReply(0, 0))

		_, err := s.IncrementParticipants(context.Background(), primitive.NewObjectID())
		if !apperr.Is(err, apperr.KindNotFound) {
			mt.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestCampStore_DeleteMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("NotFound", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := s.Delete(context.Background(), primitive.NewObjectID())
		if !apperr.Is(err, apperr.KindNotFound) {
			mt.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestCampStore_GetMissingReturnsNil(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Empty", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "meditrackDB.camps", mtest.FirstBatch))

		camp, err := s.Get(context.Background(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("Get returned error: %v", err)
		}
		if camp != nil {
			mt.Errorf("expected nil camp, got %+v", camp)
		}
	})
}

func TestCampStore_RejectsWithoutQuerying(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("EmptyPatch", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		_, err := s.Update(context.Background(), primitive.NewObjectID(), models.CampPatch{})
		if !apperr.Is(err, apperr.KindValidation) {
			mt.Fatalf("expected validation error, got %v", err)
		}
	})

	mt.Run("UnknownSortField", func(mt *mtest.T) {
		s := NewCampStore(mt.DB)
		_, _, err := s.List(context.Background(), CampQuery{SortBy: "$where", Page: paging.Parse("", "")})
		if !apperr.Is(err, apperr.KindValidation) {
			mt.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUserStore_CreateIfAbsent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Inserted", func(mt *mtest.T) {
		s := NewUserStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))

		res, err := s.CreateIfAbsent(context.Background(), models.User{Email: "Ada@Example.com", Name: "Ada"})
		if err != nil {
			mt.Fatalf("CreateIfAbsent returned error: %v", err)
		}
		if res.InsertedID == nil {
			mt.Fatal("expected an inserted id")
		}
	})

	mt.Run("AlreadyExists", func(mt *mtest.T) {
		s := NewUserStore(mt.DB)
		mt.AddMockResponses(updateReply(1, 0))

		res, err := s.CreateIfAbsent(context.Background(), models.User{Email: "ada@example.com"})
		if err != nil {
			mt.Fatalf("CreateIfAbsent returned error: %v", err)
		}
		if res.InsertedID != nil {
			mt.Errorf("expected nil inserted id, got %v", res.InsertedID.Hex())
		}
	})

	mt.Run("DuplicateKeyRace", func(mt *mtest.T) {
		s := NewUserStore(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: meditrackDB.users index: uniq_email",
		}))

		res, err := s.CreateIfAbsent(context.Background(), models.User{Email: "ada@example.com"})
		if err != nil {
			mt.Fatalf("duplicate key should be treated as existing user, got %v", err)
		}
		if res.InsertedID != nil {
			mt.Error("expected nil inserted id on duplicate key")
		}
	})

	mt.Run("MissingEmail", func(mt *mtest.T) {
		s := NewUserStore(mt.DB)
		_, err := s.CreateIfAbsent(context.Background(), models.User{Name: "No Email"})
		if !apperr.Is(err, apperr.KindValidation) {
			mt.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestRegistrationStore_MarkPaid(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Paid", func(mt *mtest.T) {
		s := NewRegistrationStore(mt.DB)
		mt.AddMockResponses(updateReply(1, 1))

		if _, err := s.MarkPaid(context.Background(), primitive.NewObjectID(), "pi_123", time.Now()); err != nil {
			mt.Fatalf("MarkPaid returned error: %v", err)
		}
	})

	mt.Run("UnknownID", func(mt *mtest.T) {
		s := NewRegistrationStore(mt.DB)
		mt.AddMockResponses(updateReply(0, 0))

		_, err := s.MarkPaid(context.Background(), primitive.NewObjectID(), "pi_123", time.Now())
		if !apperr.Is(err, apperr.KindNotFound) {
			mt.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestSearchFilter(t *testing.T) {
	if f := searchFilter("", "campName"); len(f) != 0 {
		t.Errorf("empty search should produce empty filter, got %v", f)
	}
	if f := searchFilter("   ", "campName"); len(f) != 0 {
		t.Errorf("blank search should produce empty filter, got %v", f)
	}

	f := searchFilter("a.b(", "campName", "location")
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with 2 clauses, got %v", f)
	}
	re := or[0].(bson.M)["campName"].(primitive.Regex)
	if re.Pattern != `a\.b\(` || re.Options != "i" {
		t.Errorf("unexpected regex %+v", re)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
