package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video-hosting/pkg/models"
	"video-hosting/pkg/storage"
)

// Store interfaces are satisfied by pkg/database; tests swap in fakes.

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type VideoStore interface {
	List(ctx context.Context) ([]models.Video, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	Insert(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// Media is the remote media host: uploads return a URL plus an opaque
// public id used for later deletion.
type Media interface {
	Upload(ctx context.Context, body io.Reader, filename, folder string) (*storage.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// Broadcaster pushes entity-change events to connected realtime clients.
type Broadcaster interface {
	Emit(event string, data interface{})
}

func serverError(c *gin.Context, message string, err error) {
	logrus.WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
}

// uploadFile pushes a multipart file to the media host.
func uploadFile(c *gin.Context, media Media, field, folder string) (*storage.Asset, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return media.Upload(c.Request.Context(), src, file.Filename, folder)
}

func hasFile(c *gin.Context, field string) bool {
	_, err := c.FormFile(field)
	return err == nil
}

func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "application/json")
}
