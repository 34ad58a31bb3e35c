package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/models"
)

func userDoc(id primitive.ObjectID, email string) bson.D {
	now := primitive.NewDateTimeFromTime(time.Now())
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Asha"},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "phone", Value: "encrypted"},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success assigns an id", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.Create(context.Background(), &models.User{
			Name:  "Asha",
			Email: "asha@example.com",
		})
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("duplicate email key maps to conflict", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &models.User{
			Name:  "Asha",
			Email: "asha@example.com",
		})
		assert.ErrorIs(mt, err, apperrors.ErrEmailExists)
	})

	mt.Run("out of range age rejected before hitting the store", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		age := 17

		_, err := repo.Create(context.Background(), &models.User{
			Name:  "Kid",
			Email: "kid@example.com",
			Age:   &age,
		})
		assert.ErrorIs(mt, err, apperrors.ErrValidation)
	})
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notesvault.Users", mtest.FirstBatch,
			userDoc(id, "asha@example.com")))

		user, err := repo.GetByEmail(context.Background(), "asha@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
	})

	mt.Run("absent maps to not found", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notesvault.Users", mtest.FirstBatch))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})
}

func TestUserRepositoryUpdateSetShape(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("only provided fields are set", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		id := primitive.NewObjectID()
		name := "Asha K"

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: userDoc(id, "asha@example.com")},
		))

		_, err := repo.Update(context.Background(), id, models.UserUpdate{Name: &name})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		set := evt.Command.Lookup("update", "$set")
		assert.Equal(mt, "Asha K", set.Document().Lookup("name").StringValue())
		_, err = set.Document().LookupErr("age")
		assert.Error(mt, err, "age must not be touched")
		_, err = set.Document().LookupErr("phone")
		assert.Error(mt, err, "phone must not be touched")
	})
}
