package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"

	"unistay/internal/domain"
)

// Archiver stores SMS log rows before they are deleted and returns the
// object name it wrote.
type Archiver interface {
	Archive(ctx context.Context, name string, logs []domain.SMSLog) (string, error)
}

type minioArchiver struct {
	client *minio.Client
	bucket string
}

func NewMinIOArchiver(client *minio.Client, bucket string) Archiver {
	return &minioArchiver{client: client, bucket: bucket}
}

func (a *minioArchiver) Archive(ctx context.Context, name string, logs []domain.SMSLog) (string, error) {
	data, err := EncodeJSONLines(logs)
	if err != nil {
		return "", err
	}

	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/x-ndjson",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive: %w", err)
	}
	return a.bucket + "/" + name, nil
}

// EncodeJSONLines writes one JSON object per log row.
func EncodeJSONLines(logs []domain.SMSLog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range logs {
		if err := enc.Encode(&logs[i]); err != nil {
			return nil, fmt.Errorf("failed to encode sms log %s: %w", logs[i].ID, err)
		}
	}
	return buf.Bytes(), nil
}
