package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Folder names assets are grouped under on the media host.
const (
	VideoFolder     = "videos"
	ThumbnailFolder = "thumbnails"
	CategoryFolder  = "categories"
)

// Asset is what the media host hands back for an upload: a public URL and
// an opaque identifier used for later deletion.
type Asset struct {
	URL      string
	PublicID string
}

// S3Store uploads and deletes media assets in an S3 bucket. The object key
// doubles as the asset's public id.
type S3Store struct {
	uploader *s3manager.Uploader
	svc      *s3.S3
	bucket   string
}

func NewS3Store(region, bucket string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}
	return &S3Store{
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(sess),
		bucket:   bucket,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, body io.Reader, filename, folder string) (*Asset, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
	contentType := mime.TypeByExtension(ext)

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upload %s", key)
	}

	return &Asset{URL: result.Location, PublicID: key}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	return errors.Wrapf(err, "failed to delete %s", publicID)
}
