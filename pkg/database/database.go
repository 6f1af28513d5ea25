package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"video-hosting/pkg/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// Mongo wraps the client and database handle shared by the stores.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, name string) (*Mongo, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return &Mongo{client: client, db: client.Database(name)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the handlers rely on: category
// names and user emails. The index closes the race two concurrent inserts
// would otherwise win together.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.db.Collection(models.CategoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create category name index")
	}

	_, err = m.db.Collection(models.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	return errors.Wrap(err, "failed to create user email index")
}

func (m *Mongo) Categories() *CategoryStore {
	return &CategoryStore{col: m.db.Collection(models.CategoryCollection)}
}

func (m *Mongo) Videos() *VideoStore {
	return &VideoStore{col: m.db.Collection(models.VideoCollection)}
}

func (m *Mongo) Users() *UserStore {
	return &UserStore{col: m.db.Collection(models.UserCollection)}
}
