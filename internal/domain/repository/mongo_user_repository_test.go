package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockUser() *model.User {
	return &model.User{
		Username:     "alice",
		FirstName:    "Alice",
		LastName:     "Liddell",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Birthdate:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Age:          24,
		IsActive:     true,
		CreatedAt:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoUserRepository(mt.Coll)

		u := newMockUser()
		require.NoError(mt, repo.Create(context.Background(), u))
		_, err := primitive.ObjectIDFromHex(u.ID)
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_unique",
		}))
		repo := NewMongoUserRepository(mt.Coll)

		err := repo.Create(context.Background(), newMockUser())
		assert.ErrorIs(mt, err, common.ErrConflict)
	})

	mt.Run("find by username", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "age", Value: 24},
			{Key: "isActive", Value: true},
		}))
		repo := NewMongoUserRepository(mt.Coll)

		got, err := repo.FindByUsername(context.Background(), "alice")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), got.ID)
		assert.Equal(mt, "$2a$10$hash", got.PasswordHash)
		assert.True(mt, got.IsActive)
		assert.Nil(mt, got.ModifiedAt)
	})

	mt.Run("find by username not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.Coll)

		_, err := repo.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})
		repo := NewMongoUserRepository(mt.Coll)

		u := newMockUser()
		u.ID = primitive.NewObjectID().Hex()
		require.NoError(mt, repo.Update(context.Background(), u))
	})

	mt.Run("update missing document", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})
		repo := NewMongoUserRepository(mt.Coll)

		u := newMockUser()
		u.ID = primitive.NewObjectID().Hex()
		assert.ErrorIs(mt, repo.Update(context.Background(), u), common.ErrNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureUserIndexes(context.Background(), mt.Coll))
	})
}
