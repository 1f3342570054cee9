package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
)

// Client uploads embedded images to S3/MinIO and returns their public URL
type Client struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewClient creates a new S3/MinIO client
func NewClient(cfg *config.S3Config, logger zerolog.Logger, m *metrics.Metrics) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Client{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    logger.With().Str("component", "s3").Logger(),
		metrics:   m,
		now:       time.Now,
	}, nil
}

// EnsureBucket creates bucket if it doesn't exist and sets public read policy
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	c.logger.Info().Str("bucket", c.bucket).Msg("created S3 bucket")

	if err := c.client.SetBucketPolicy(ctx, c.bucket, publicReadPolicy(c.bucket)); err != nil {
		c.logger.Warn().Err(err).Msg("failed to set public bucket policy, images may not be publicly accessible")
	}

	return nil
}

// Name returns the component name
func (c *Client) Name() string {
	return "s3"
}

// HealthCheck checks that the bucket is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", c.bucket)
	}
	return nil
}

// Store uploads a data URI image and returns its public URL. Values that are
// not data URIs, such as URLs of already uploaded images, are kept as is.
func (c *Client) Store(ctx context.Context, prefix, value string) (string, error) {
	if !datauri.IsDataURI(value) {
		return value, nil
	}

	img, err := datauri.Decode(value)
	if err != nil {
		return "", err
	}

	start := time.Now()
	objectKey := c.ObjectKey(prefix, img.ContentType)

	_, err = c.client.PutObject(ctx, c.bucket, objectKey, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	c.metrics.RecordImageStored("s3", time.Since(start).Seconds())

	url := c.GetPublicURL(objectKey)
	c.logger.Debug().
		Str("object_key", objectKey).
		Str("url", url).
		Int("size", len(img.Data)).
		Msg("uploaded image to S3")

	return url, nil
}

// ObjectKey builds {prefix}/{YYYY}/{MM}/{DD}/{uuid}{ext}
func (c *Client) ObjectKey(prefix, contentType string) string {
	now := c.now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s",
		prefix,
		now.Year(),
		now.Month(),
		now.Day(),
		uuid.NewString(),
		datauri.Extension(contentType),
	)
}

// GetPublicURL returns public URL for the given object key
func (c *Client) GetPublicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, objectKey)
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}
	]
}`, bucket)
}

// InlineStore keeps images inline as data URIs, used when object storage
// is disabled
type InlineStore struct {
	metrics *metrics.Metrics
}

// NewInlineStore creates an inline image store
func NewInlineStore(m *metrics.Metrics) *InlineStore {
	return &InlineStore{metrics: m}
}

// Store returns value unchanged
func (s *InlineStore) Store(_ context.Context, _, value string) (string, error) {
	if datauri.IsDataURI(value) {
		s.metrics.RecordImageStored("inline", 0)
	}
	return value, nil
}
