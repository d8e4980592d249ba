package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// MinIOClient wraps MinIO operations for the recording and notes archive
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. https://minio.example.com when MinIO sits behind a proxy
	logger    *zap.Logger
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	if logger != nil {
		logger.Info("✅ Object storage ready",
			zap.String("endpoint", cfg.Endpoint),
			zap.String("bucket", cfg.BucketName),
		)
	}
	return client, nil
}

// ensureBucket creates the bucket when missing. Objects stay private and
// are shared through presigned URLs.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadFile uploads a stream of known size
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	if m.logger != nil {
		m.logger.Debug("object uploaded",
			zap.String("object", objectName),
			zap.Int64("size", size),
			zap.String("content_type", contentType),
		)
	}
	return nil
}

// UploadBytes uploads an in-memory payload
func (m *MinIOClient) UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) error {
	return m.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
}

// GetFileURL returns a presigned download URL, rewritten onto the public
// URL when one is configured
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return rewriteHost(u, m.publicURL), nil
}

// rewriteHost swaps scheme://host of u for publicURL, keeping path and query
func rewriteHost(u *url.URL, publicURL string) string {
	if publicURL == "" {
		return u.String()
	}
	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}
	return publicURL + pathAndQuery
}

// ListFiles lists object keys under prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// BucketInfo describes the archive bucket
type BucketInfo struct {
	Bucket      string `json:"bucket"`
	Exists      bool   `json:"bucket_exists"`
	Endpoint    string `json:"endpoint"`
	AudioFiles  int    `json:"audio_files"`
	NotesFiles  int    `json:"notes_files"`
	ListingNote string `json:"error,omitempty"`
}

// GetBucketInfo returns information about the bucket and its archive contents
func (m *MinIOClient) GetBucketInfo(ctx context.Context) (*BucketInfo, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	info := &BucketInfo{
		Bucket:   m.bucket,
		Exists:   exists,
		Endpoint: m.client.EndpointURL().String(),
	}
	if !exists {
		return info, nil
	}

	audio, err := m.ListFiles(ctx, "audio/")
	if err != nil {
		info.ListingNote = err.Error()
		return info, nil
	}
	notes, err := m.ListFiles(ctx, "notes/")
	if err != nil {
		info.ListingNote = err.Error()
		return info, nil
	}
	info.AudioFiles = len(audio)
	info.NotesFiles = len(notes)
	return info, nil
}
