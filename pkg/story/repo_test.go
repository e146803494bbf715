package story_test

import (
	"testing"

	"echoclime/pkg/story"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGetAllRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("featured stories sort first, bad documents are skipped", func(mt *mtest.T) {
		stories := []bson.D{
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "views", Value: 100}},
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "views", Value: 10}, {Key: "featured", Value: true}},
			{{Key: "_id", Value: "oops"}, {Key: "views", Value: 50}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stories.foo", mtest.FirstBatch, stories...))
		repo := story.NewMongoRepo(mt.DB)

		results := repo.GetAll()

		assert.Len(t, results, 2)
		assert.True(t, results[0].Featured)
		assert.Equal(t, 100, results[1].Views)
	})

	mt.Run("mongo Find error", func(mt *mtest.T) {
		repo := story.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "some error",
		}))

		results := repo.GetAll()

		assert.Nil(t, results)
	})
}

func TestGetByIDRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid id format", func(mt *mtest.T) {
		repo := story.NewMongoRepo(mt.DB)

		result, err := repo.GetByID("not-a-hex-id")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.EqualError(t, err, "invalid ID format")
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := story.NewMongoRepo(mt.DB)
		validID := "60b6d28f3f1d2f8a2c0d6b5a"

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Message: "error",
		}))

		result, err := repo.GetByID(validID)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.EqualError(t, err, "failed to increment views and fetch story: error")
	})
}

func TestGetByCategoryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		stories := []bson.D{
			{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "category", Value: "marine"},
			},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stories.foo", mtest.FirstBatch, stories...))

		repo := story.NewMongoRepo(mt.DB)
		results := repo.GetByCategory("marine")

		assert.Len(t, results, 1)
		assert.Equal(t, "marine", results[0].Category)
	})

	mt.Run("mongo Find error", func(mt *mtest.T) {
		repo := story.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Message: "error",
		}))

		results := repo.GetByCategory("marine")

		assert.Nil(t, results)
	})
}
