package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/storage"
)

type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Put streams r into the bucket under key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (domain.Object, error) {
	info, err := s.client.PutObject(ctx, s.bucketName, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.Object{}, fmt.Errorf("put %s: %w", key, err)
	}
	return domain.Object{
		Key:         key,
		URL:         s.objectURL(key),
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// objectURL is the path-style URL of key. Only readable when the bucket
// policy allows anonymous GET.
func (s *Store) objectURL(key string) string {
	u := *s.client.EndpointURL()
	u.Path = "/" + s.bucketName + "/" + strings.TrimPrefix(key, "/")
	u.RawPath = "/" + s.bucketName + "/" + escapeKey(key)
	return u.String()
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Check is the storage health check: the bucket must still exist.
func (s *Store) Check(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s not found", s.bucketName)
	}
	return nil
}
