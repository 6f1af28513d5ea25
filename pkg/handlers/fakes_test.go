package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video-hosting/pkg/database"
	"video-hosting/pkg/models"
	"video-hosting/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// opLog records the order of side effects so tests can assert that remote
// assets are deleted before database records.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

type fakeMedia struct {
	log     *opLog
	next    int
	deletes []string
}

func (f *fakeMedia) Upload(_ context.Context, _ io.Reader, _, folder string) (*storage.Asset, error) {
	f.next++
	id := fmt.Sprintf("%s/asset-%d", folder, f.next)
	f.log.add("media.upload:" + id)
	return &storage.Asset{URL: "https://media.test/" + id, PublicID: id}, nil
}

func (f *fakeMedia) Delete(_ context.Context, publicID string) error {
	f.deletes = append(f.deletes, publicID)
	f.log.add("media.delete:" + publicID)
	return nil
}

type recordedEvent struct {
	name string
	data interface{}
}

type fakeEvents struct {
	events []recordedEvent
}

func (f *fakeEvents) Emit(name string, data interface{}) {
	f.events = append(f.events, recordedEvent{name: name, data: data})
}

func (f *fakeEvents) last(t *testing.T) recordedEvent {
	t.Helper()
	if len(f.events) == 0 {
		t.Fatal("no events emitted")
	}
	return f.events[len(f.events)-1]
}

type fakeCategoryStore struct {
	log        *opLog
	categories map[primitive.ObjectID]models.Category
}

func newFakeCategoryStore(log *opLog) *fakeCategoryStore {
	return &fakeCategoryStore{log: log, categories: map[primitive.ObjectID]models.Category{}}
}

func (s *fakeCategoryStore) List(context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeCategoryStore) GetByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeCategoryStore) Insert(_ context.Context, category *models.Category) error {
	for _, c := range s.categories {
		if c.Name == category.Name {
			return database.ErrDuplicate
		}
	}
	category.ID = primitive.NewObjectID()
	s.categories[category.ID] = *category
	return nil
}

func (s *fakeCategoryStore) Update(_ context.Context, category *models.Category) error {
	if _, ok := s.categories[category.ID]; !ok {
		return database.ErrNotFound
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.categories[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.categories, id)
	s.log.add("store.delete:category")
	return nil
}

type fakeVideoStore struct {
	log    *opLog
	videos map[primitive.ObjectID]models.Video
}

func newFakeVideoStore(log *opLog) *fakeVideoStore {
	return &fakeVideoStore{log: log, videos: map[primitive.ObjectID]models.Video{}}
}

func (s *fakeVideoStore) List(context.Context) ([]models.Video, error) {
	out := []models.Video{}
	for _, v := range s.videos {
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeVideoStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	if v, ok := s.videos[id]; ok {
		return &v, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeVideoStore) Insert(_ context.Context, video *models.Video) error {
	video.ID = primitive.NewObjectID()
	s.videos[video.ID] = *video
	return nil
}

func (s *fakeVideoStore) Update(_ context.Context, video *models.Video) error {
	if _, ok := s.videos[video.ID]; !ok {
		return database.ErrNotFound
	}
	s.videos[video.ID] = *video
	return nil
}

func (s *fakeVideoStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.videos[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.videos, id)
	s.log.add("store.delete:video")
	return nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *fakeUserStore) List(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = *user
	return nil
}

// multipartBody builds a multipart form with string fields and small fake
// file parts.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for field, filename := range files {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create file %s: %v", field, err)
		}
		if _, err := fw.Write([]byte("file-content")); err != nil {
			t.Fatalf("write file %s: %v", field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
