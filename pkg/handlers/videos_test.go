package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video-hosting/pkg/models"
	"video-hosting/pkg/realtime"
)

type videoFixture struct {
	router *gin.Engine
	store  *fakeVideoStore
	media  *fakeMedia
	events *fakeEvents
	log    *opLog
}

func newVideoFixture() *videoFixture {
	log := &opLog{}
	store := newFakeVideoStore(log)
	media := &fakeMedia{log: log}
	events := &fakeEvents{}
	h := NewVideoHandler(store, media, events)

	r := gin.New()
	r.POST("/api/videos", h.Upload)
	r.GET("/api/videos", h.List)
	r.GET("/api/videos/:id", h.Get)
	r.PUT("/api/videos/:id", h.Update)
	r.DELETE("/api/videos/:id", h.Delete)

	return &videoFixture{router: r, store: store, media: media, events: events, log: log}
}

func (f *videoFixture) uploadVideo(t *testing.T, title string) models.Video {
	t.Helper()
	body, contentType := multipartBody(t,
		map[string]string{
			"title":       title,
			"description": "a description",
			"category":    primitive.NewObjectID().Hex(),
		},
		map[string]string{
			"video":     "clip.mp4",
			"thumbnail": "thumb.jpg",
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Video models.Video `json:"video"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Video
}

func TestUploadVideoMissingFiles(t *testing.T) {
	f := newVideoFixture()

	body, contentType := multipartBody(t,
		map[string]string{
			"title":    "My video",
			"category": primitive.NewObjectID().Hex(),
		},
		map[string]string{"video": "clip.mp4"}) // no thumbnail

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Video and Thumbnail are required.")
	assert.Empty(t, f.store.videos)
}

func TestUploadVideoMissingTitle(t *testing.T) {
	f := newVideoFixture()

	body, contentType := multipartBody(t,
		map[string]string{"category": primitive.NewObjectID().Hex()},
		map[string]string{"video": "clip.mp4", "thumbnail": "thumb.jpg"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadVideoStoresAssets(t *testing.T) {
	f := newVideoFixture()
	video := f.uploadVideo(t, "My video")

	assert.Equal(t, "My video", video.Title)
	assert.Contains(t, video.VideoURL, "videos/")
	assert.Contains(t, video.Thumbnail, "thumbnails/")
	assert.NotEmpty(t, video.VideoPublicID)
	assert.NotEmpty(t, video.ThumbnailPublicID)
	assert.Equal(t, realtime.VideoAdded, f.events.last(t).name)
}

func TestUpdateVideoReplacesOnlySuppliedAsset(t *testing.T) {
	f := newVideoFixture()
	video := f.uploadVideo(t, "My video")

	body, contentType := multipartBody(t, nil, map[string]string{"thumbnail": "new-thumb.jpg"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/videos/"+video.ID.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Only the old thumbnail asset was deleted.
	require.Len(t, f.media.deletes, 1)
	assert.Equal(t, video.ThumbnailPublicID, f.media.deletes[0])

	updated := f.store.videos[video.ID]
	assert.Equal(t, video.VideoPublicID, updated.VideoPublicID)
	assert.NotEqual(t, video.ThumbnailPublicID, updated.ThumbnailPublicID)
	assert.Equal(t, "My video", updated.Title)
	assert.Equal(t, realtime.VideoUpdated, f.events.last(t).name)
}

func TestUpdateVideoKeepsFieldsWhenAbsent(t *testing.T) {
	f := newVideoFixture()
	video := f.uploadVideo(t, "My video")

	body, contentType := multipartBody(t, map[string]string{"description": "updated"}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/videos/"+video.ID.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	updated := f.store.videos[video.ID]
	assert.Equal(t, "My video", updated.Title)
	assert.Equal(t, "updated", updated.Description)
	assert.Empty(t, f.media.deletes)
}

func TestDeleteVideoRemovesBothAssetsFirst(t *testing.T) {
	f := newVideoFixture()
	video := f.uploadVideo(t, "My video")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/videos/"+video.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, f.media.deletes, 2)
	assert.Equal(t, video.VideoPublicID, f.media.deletes[0])
	assert.Equal(t, video.ThumbnailPublicID, f.media.deletes[1])

	// Both asset deletes happen before the record delete.
	n := len(f.log.ops)
	require.GreaterOrEqual(t, n, 3)
	assert.Contains(t, f.log.ops[n-3], "media.delete")
	assert.Contains(t, f.log.ops[n-2], "media.delete")
	assert.Equal(t, "store.delete:video", f.log.ops[n-1])

	ev := f.events.last(t)
	assert.Equal(t, realtime.VideoDeleted, ev.name)
	assert.Empty(t, f.store.videos)
}

func TestGetVideoNotFound(t *testing.T) {
	f := newVideoFixture()

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Video not found")
}
