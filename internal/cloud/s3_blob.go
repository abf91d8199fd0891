package cloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3BlobStore は S3（または MinIO などの互換ストレージ）を使う BlobStore です
type S3BlobStore struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3BlobStore は s3.auth_type に応じて認証方法を切り替えてクライアントを生成します
func NewS3BlobStore(ctx context.Context, cfg *config.Config) (*S3BlobStore, error) {
	if cfg.Sync.Bucket == "" {
		return nil, errors.New("sync.bucket is required for the s3 provider")
	}

	var awsCfgOpts []func(*awsconfig.LoadOptions) error
	awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.S3.Region))

	switch cfg.S3.AuthType {
	case "static_credentials":
		slog.Info("Configuring S3 with static credentials.")
		if cfg.S3.AccessKeyID == "" || cfg.S3.SecretAccessKey == "" {
			return nil, errors.New("s3 auth_type is 'static_credentials' but access_key_id or secret_access_key is missing")
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))
	case "iam_role":
		slog.Info("Configuring S3 with IAM Role credentials.")
	default:
		slog.Warn("Unknown S3 auth_type specified, defaulting to IAM Role.", "type", cfg.S3.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsCfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config for s3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3BlobStore{client: client, bucket: cfg.Sync.Bucket, prefix: cfg.Sync.Prefix}, nil
}

func (s *S3BlobStore) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

func (s *S3BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrBlobNotFound
		}
		logger.Error("Failed to get object from S3", "error", err, "bucket", s.bucket, "key", s.objectKey(key))
		return nil, fmt.Errorf("S3BlobStore.Get: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("S3BlobStore.Get: read body: %w", err)
	}
	return data, nil
}

func (s *S3BlobStore) Put(ctx context.Context, key string, data []byte) error {
	logger := middleware.GetLogger(ctx)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Error("Failed to put object to S3", "error", err, "bucket", s.bucket, "key", s.objectKey(key))
		return fmt.Errorf("S3BlobStore.Put: %w", err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
