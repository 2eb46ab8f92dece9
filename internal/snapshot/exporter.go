package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"parking-api/internal/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// ObjectStore is the subset of *minio.Client used by the exporter.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Exporter writes point-in-time copies of all spots to S3-compatible storage.
type Exporter struct {
	store  ObjectStore
	bucket string
	now    func() time.Time
}

// NewMinioClient connects to an S3-compatible endpoint with static credentials.
func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("snapshot: MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to create MinIO client: %w", err)
	}
	return client, nil
}

// NewExporter creates an exporter writing into bucket.
func NewExporter(store ObjectStore, bucket string) *Exporter {
	return &Exporter{store: store, bucket: bucket, now: time.Now}
}

// ObjectName returns the key a snapshot taken at t is stored under.
func ObjectName(t time.Time) string {
	return "spots/" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Export uploads spots as a JSON array and returns the object name.
func (e *Exporter) Export(ctx context.Context, spots []models.ParkingSpot) (string, error) {
	if spots == nil {
		spots = []models.ParkingSpot{}
	}

	exists, err := e.store.BucketExists(ctx, e.bucket)
	if err != nil {
		return "", fmt.Errorf("snapshot: error checking bucket existence: %w", err)
	}
	if !exists {
		if err := e.store.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("snapshot: failed to create bucket %s: %w", e.bucket, err)
		}
		log.Info().Str("bucket", e.bucket).Msg("created snapshot bucket")
	}

	payload, err := json.Marshal(spots)
	if err != nil {
		return "", fmt.Errorf("snapshot: failed to encode spots: %w", err)
	}

	name := ObjectName(e.now())
	_, err = e.store.PutObject(ctx, e.bucket, name, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: failed to upload %s: %w", name, err)
	}

	log.Info().Str("bucket", e.bucket).Str("object", name).Int("spots", len(spots)).Msg("snapshot exported")
	return name, nil
}
