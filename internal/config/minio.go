package config

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// NewMinIOClient returns nil without error when no endpoint is configured;
// archiving is then skipped.
func NewMinIOClient(cfg *Config, logger *zap.Logger) (*minio.Client, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOArchiveBucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOArchiveBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
		logger.Info("Created MinIO bucket", zap.String("bucket", cfg.MinIOArchiveBucket))
	}

	return client, nil
}
