package story

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("stories"),
	}
}

func (r *MongoRepo) Create(story *Story) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, story)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("story already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		story.MongoID = oid
		story.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

// GetByID fetches one story and counts the read in the same round-trip.
func (r *MongoRepo) GetByID(id string) (*Story, error) {
	ctx := context.TODO()
	var story Story

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid ID format")
	}

	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("story not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment views and fetch story: %w", err)
	}

	story.ID = story.MongoID.Hex()
	return &story, nil
}

// GetAll returns every story, featured ones first, then by views.
func (r *MongoRepo) GetAll() []*Story {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var stories []*Story
	for cursor.Next(ctx) {
		var story Story
		if err := cursor.Decode(&story); err != nil {
			continue
		}
		story.ID = story.MongoID.Hex()
		stories = append(stories, &story)
	}

	sort.Slice(stories, func(i, j int) bool {
		if stories[i].Featured != stories[j].Featured {
			return stories[i].Featured
		}
		return stories[i].Views > stories[j].Views
	})

	return stories
}

func (r *MongoRepo) GetByCategory(category string) []*Story {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var stories []*Story
	for cursor.Next(ctx) {
		var story Story
		if cursor.Decode(&story) == nil {
			story.ID = story.MongoID.Hex()
			stories = append(stories, &story)
		}
	}

	return stories
}
