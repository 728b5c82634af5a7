package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SignedURLTTL is how long presigned archive download links stay valid.
const SignedURLTTL = 5 * time.Minute

// ArchiveStore abstracts the object store holding puzzle archives.
type ArchiveStore interface {
	// UploadArchive stores the file at localPath under storagePath,
	// overwriting any existing object.
	UploadArchive(ctx context.Context, storagePath string, localPath string) error
	// SignedURL returns a short-lived download URL for storagePath.
	SignedURL(ctx context.Context, storagePath string) (string, error)
}

// Store is the process-wide archive store, set by InitStorage.
var Store ArchiveStore

type minioStore struct {
	client *minio.Client
	bucket string
}

// InitStorage connects the MinIO client and ensures the puzzle bucket exists.
func InitStorage() error {
	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.PuzzleBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.PuzzleBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	Store = &minioStore{client: client, bucket: config.PuzzleBucket}
	return nil
}

func (s *minioStore) UploadArchive(ctx context.Context, storagePath string, localPath string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, storagePath, localPath, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", storagePath, err)
	}
	return nil
}

func (s *minioStore) SignedURL(ctx context.Context, storagePath string) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, storagePath, SignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", storagePath, err)
	}
	return signed.String(), nil
}
