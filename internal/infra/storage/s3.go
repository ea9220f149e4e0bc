package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/config"
)

// S3Store persists profile attachments in an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	bucket *string
	logger *zap.Logger
}

// NewS3Store builds the client, verifies the bucket exists, and returns the store.
func NewS3Store(ctx context.Context, cfg config.S3Settings, log *zap.Logger) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	bucket := aws.String(cfg.Bucket)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Region = cfg.Region
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: bucket}); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("s3: bucket %q does not exist", cfg.Bucket)
		}
		return nil, fmt.Errorf("s3: check bucket: %w", err)
	}

	log.Info("S3 store ready",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
	)

	return &S3Store{client: client, bucket: bucket, logger: log}, nil
}

// Put uploads an object under the given key.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3: put object %q: %w", key, err)
	}

	return nil
}

// Delete removes the object under the given key. Missing objects are not an error.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3: delete object %q: %w", key, err)
	}

	return nil
}

var _ port.FileStore = (*S3Store)(nil)
