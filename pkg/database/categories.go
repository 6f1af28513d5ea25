package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"video-hosting/pkg/models"
)

type CategoryStore struct {
	col *mongo.Collection
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories")
	}
	return categories, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get category")
	}
	return &category, nil
}

func (s *CategoryStore) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get category by name")
	}
	return &category, nil
}

func (s *CategoryStore) Insert(ctx context.Context, category *models.Category) error {
	res, err := s.col.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "failed to insert category")
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, category *models.Category) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "failed to update category")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
