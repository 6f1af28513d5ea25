package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"video-hosting/pkg/models"
)

type VideoStore struct {
	col *mongo.Collection
}

func (s *VideoStore) List(ctx context.Context) ([]models.Video, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}
	defer cursor.Close(ctx)

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, errors.Wrap(err, "failed to decode videos")
	}
	return videos, nil
}

func (s *VideoStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get video")
	}
	return &video, nil
}

func (s *VideoStore) Insert(ctx context.Context, video *models.Video) error {
	res, err := s.col.InsertOne(ctx, video)
	if err != nil {
		return errors.Wrap(err, "failed to insert video")
	}
	video.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *VideoStore) Update(ctx context.Context, video *models.Video) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": video.ID}, video)
	if err != nil {
		return errors.Wrap(err, "failed to update video")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *VideoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete video")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
