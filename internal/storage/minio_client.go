package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"readit/internal/config"
)

// Storage is the opaque "store blob, return URL" media service the rest of
// the system depends on.
type Storage interface {
	UploadMedia(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, error)
	DeleteMedia(ctx context.Context, objectName string) error
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".mkv": true,
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg.MinIO}, nil
}

// UploadMedia stores the blob and returns its public URL. Videos and images
// land in separate buckets, matching the mobile client's expectations.
func (m *MinIOClient) UploadMedia(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := m.cfg.ImageBucket
	if videoExtensions[fileExt] {
		bucket = m.cfg.VideoBucket
	}

	objectName := fmt.Sprintf("%s/%d_%s%s",
		ownerID, time.Now().UnixMilli(), uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"owner-id":          ownerID,
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.Endpoint, bucket, objectName), nil
}

func (m *MinIOClient) DeleteMedia(ctx context.Context, objectName string) error {
	bucket := m.cfg.ImageBucket
	if videoExtensions[strings.ToLower(filepath.Ext(objectName))] {
		bucket = m.cfg.VideoBucket
	}

	if err := m.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}
