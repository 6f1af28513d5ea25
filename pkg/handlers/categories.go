package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video-hosting/pkg/database"
	"video-hosting/pkg/models"
	"video-hosting/pkg/realtime"
	"video-hosting/pkg/storage"
)

type CategoryHandler struct {
	store  CategoryStore
	media  Media
	events Broadcaster
}

func NewCategoryHandler(store CategoryStore, media Media, events Broadcaster) *CategoryHandler {
	return &CategoryHandler{store: store, media: media, events: events}
}

// categoryName accepts the name either as a JSON body or a multipart form
// field, since a category may be created with or without an image file.
func categoryName(c *gin.Context) string {
	if isJSON(c) {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			return ""
		}
		return body.Name
	}
	return c.PostForm("name")
}

func (h *CategoryHandler) Add(c *gin.Context) {
	name := categoryName(c)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	existing, err := h.store.GetByName(c.Request.Context(), name)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		serverError(c, "Server Error", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
		return
	}

	category := &models.Category{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if hasFile(c, "image") {
		asset, err := uploadFile(c, h.media, "image", storage.CategoryFolder)
		if err != nil {
			serverError(c, "Server Error", err)
			return
		}
		category.Image = &asset.URL
		category.ImagePublicID = asset.PublicID
	}

	if err := h.store.Insert(c.Request.Context(), category); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
			return
		}
		serverError(c, "Server Error", err)
		return
	}

	h.events.Emit(realtime.CategoryAdded, category)
	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully", "category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.store.List(c.Request.Context())
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	category, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	category, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	if name := categoryName(c); name != "" {
		category.Name = name
	}

	// A new image supersedes the old remote asset, which is deleted first.
	if hasFile(c, "image") {
		if category.ImagePublicID != "" {
			if err := h.media.Delete(c.Request.Context(), category.ImagePublicID); err != nil {
				serverError(c, "Server Error", err)
				return
			}
		}
		asset, err := uploadFile(c, h.media, "image", storage.CategoryFolder)
		if err != nil {
			serverError(c, "Server Error", err)
			return
		}
		category.Image = &asset.URL
		category.ImagePublicID = asset.PublicID
	}

	category.UpdatedAt = time.Now().UTC()

	if err := h.store.Update(c.Request.Context(), category); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
			return
		}
		serverError(c, "Server Error", err)
		return
	}

	h.events.Emit(realtime.CategoryUpdated, category)
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	category, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	// Remote asset goes first; the record survives a failed asset delete.
	if category.ImagePublicID != "" {
		if err := h.media.Delete(c.Request.Context(), category.ImagePublicID); err != nil {
			serverError(c, "Server Error", err)
			return
		}
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		serverError(c, "Server Error", err)
		return
	}

	h.events.Emit(realtime.CategoryDeleted, gin.H{"id": id.Hex()})
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
