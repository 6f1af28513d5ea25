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

type VideoHandler struct {
	store  VideoStore
	media  Media
	events Broadcaster
}

func NewVideoHandler(store VideoStore, media Media, events Broadcaster) *VideoHandler {
	return &VideoHandler{store: store, media: media, events: events}
}

func (h *VideoHandler) Upload(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")

	if title == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and category are required."})
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id"})
		return
	}
	if !hasFile(c, "video") || !hasFile(c, "thumbnail") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Video and Thumbnail are required."})
		return
	}

	videoAsset, err := uploadFile(c, h.media, "video", storage.VideoFolder)
	if err != nil {
		serverError(c, "Error uploading video", err)
		return
	}
	thumbAsset, err := uploadFile(c, h.media, "thumbnail", storage.ThumbnailFolder)
	if err != nil {
		serverError(c, "Error uploading video", err)
		return
	}

	video := &models.Video{
		Title:             title,
		Description:       description,
		CategoryID:        categoryID,
		VideoURL:          videoAsset.URL,
		Thumbnail:         thumbAsset.URL,
		VideoPublicID:     videoAsset.PublicID,
		ThumbnailPublicID: thumbAsset.PublicID,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}

	if err := h.store.Insert(c.Request.Context(), video); err != nil {
		serverError(c, "Error uploading video", err)
		return
	}

	h.events.Emit(realtime.VideoAdded, video)
	c.JSON(http.StatusCreated, gin.H{"message": "Video uploaded successfully!", "video": video})
}

func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.store.List(c.Request.Context())
	if err != nil {
		serverError(c, "Error fetching videos", err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}

	video, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}
	if err != nil {
		serverError(c, "Error fetching video", err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}

	video, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	if title := c.PostForm("title"); title != "" {
		video.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		video.Description = description
	}
	if category := c.PostForm("category"); category != "" {
		categoryID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id"})
			return
		}
		video.CategoryID = categoryID
	}

	// Each asset is replaced only when a new file arrives, and the
	// superseded remote asset is deleted first.
	if hasFile(c, "video") {
		if video.VideoPublicID != "" {
			if err := h.media.Delete(c.Request.Context(), video.VideoPublicID); err != nil {
				serverError(c, "Server Error", err)
				return
			}
		}
		asset, err := uploadFile(c, h.media, "video", storage.VideoFolder)
		if err != nil {
			serverError(c, "Server Error", err)
			return
		}
		video.VideoURL = asset.URL
		video.VideoPublicID = asset.PublicID
	}

	if hasFile(c, "thumbnail") {
		if video.ThumbnailPublicID != "" {
			if err := h.media.Delete(c.Request.Context(), video.ThumbnailPublicID); err != nil {
				serverError(c, "Server Error", err)
				return
			}
		}
		asset, err := uploadFile(c, h.media, "thumbnail", storage.ThumbnailFolder)
		if err != nil {
			serverError(c, "Server Error", err)
			return
		}
		video.Thumbnail = asset.URL
		video.ThumbnailPublicID = asset.PublicID
	}

	video.UpdatedAt = time.Now().UTC()

	if err := h.store.Update(c.Request.Context(), video); err != nil {
		serverError(c, "Server Error", err)
		return
	}

	h.events.Emit(realtime.VideoUpdated, video)
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}

	video, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Video not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	// Both remote assets go before the record does.
	if video.VideoPublicID != "" {
		if err := h.media.Delete(c.Request.Context(), video.VideoPublicID); err != nil {
			serverError(c, "Server Error", err)
			return
		}
	}
	if video.ThumbnailPublicID != "" {
		if err := h.media.Delete(c.Request.Context(), video.ThumbnailPublicID); err != nil {
			serverError(c, "Server Error", err)
			return
		}
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		serverError(c, "Server Error", err)
		return
	}

	h.events.Emit(realtime.VideoDeleted, gin.H{"id": id.Hex()})
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
