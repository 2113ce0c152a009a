package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/estensen/marketplace-api/internal/config"
)

type MinIOStorage struct {
	Client     *minio.Client
	BucketName string
	logger     logrus.FieldLogger
}

// NewMinIOStorage initializes a MinIOStorage and creates the bucket if it
// does not exist yet.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig, logger logrus.FieldLogger) (*MinIOStorage, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.WithField("bucket", cfg.Bucket).Info("Bucket created")
	}

	return &MinIOStorage{
		Client:     minioClient,
		BucketName: cfg.Bucket,
		logger:     logger,
	}, nil
}

// UploadFile uploads a CSV object to the bucket.
func (m *MinIOStorage) UploadFile(ctx context.Context, objectName string, data io.Reader) error {
	_, err := m.Client.PutObject(ctx, m.BucketName, objectName, data, -1, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to upload file '%s' to MinIO: %w", objectName, err)
	}
	m.logger.WithFields(logrus.Fields{
		"object": objectName,
		"bucket": m.BucketName,
	}).Info("File uploaded")
	return nil
}
