package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/staynest/rental-platform/internal/core/ports"
)

// S3Storage stores listing images in an S3 bucket (or a compatible API).
// Uploaded objects are publicly readable so the returned URIs can be served
// straight to clients.
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	// publicURL overrides the generated object URL prefix, for CDN fronting
	// or S3-compatible endpoints. Empty means the standard AWS URL form.
	publicURL string
}

func NewS3Storage(client *s3.Client, bucket, region, publicURL string) *S3Storage {
	return &S3Storage{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	key = strings.Trim(key, "/")
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.objectURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, uri string) error {
	key, err := s.keyFromURL(uri)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// keyFromURL recovers the object key from a URI previously returned by Upload.
func (s *S3Storage) keyFromURL(uri string) (string, error) {
	if s.publicURL != "" && strings.HasPrefix(uri, s.publicURL+"/") {
		return strings.TrimPrefix(uri, s.publicURL+"/"), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse object uri: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("object uri has no key: %s", uri)
	}
	return key, nil
}

var _ ports.ImageStorage = (*S3Storage)(nil)
