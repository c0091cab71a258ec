package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ErrInvalidReference is returned when a photo reference was not issued by
// the storage it is handed to
var ErrInvalidReference = errors.New("storage: reference not owned by this storage")

// LocalStorage keeps photos on disk. References are relative URL paths
// such as "uploads/<name>" that the HTTP server exposes.
type LocalStorage struct {
	basePath  string
	urlPrefix string
	logger    *zap.Logger
}

func NewLocalStorage(basePath string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: filepath.ToSlash(filepath.Base(basePath)),
		logger:    logger,
	}, nil
}

// Store writes the photo and returns its reference
func (s *LocalStorage) Store(ctx context.Context, name string, reader io.Reader, contentType string) (string, error) {
	file, err := os.Create(filepath.Join(s.basePath, filepath.Base(name)))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Stored photo", zap.String("name", name), zap.String("content_type", contentType))
	return path.Join(s.urlPrefix, filepath.Base(name)), nil
}

// Delete removes a stored photo. Missing files are ignored.
func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	name, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok || name == "" {
		return ErrInvalidReference
	}

	if err := os.Remove(filepath.Join(s.basePath, filepath.Base(name))); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Photo already removed", zap.String("ref", ref))
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Dir is the directory photos are written to
func (s *LocalStorage) Dir() string {
	return s.basePath
}

// URLPrefix is the path segment references start with
func (s *LocalStorage) URLPrefix() string {
	return s.urlPrefix
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage keeps photos in a bucket. References are public object URLs.
type S3Storage struct {
	client s3API
	bucket string
	prefix string
	region string
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, bucket, prefix, region string, logger *zap.Logger) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newS3Storage(s3.NewFromConfig(cfg), bucket, prefix, region, logger), nil
}

func newS3Storage(client s3API, bucket, prefix, region string, logger *zap.Logger) *S3Storage {
	return &S3Storage{
		client: client,
		bucket: bucket,
		prefix: prefix,
		region: region,
		logger: logger,
	}
}

func (s *S3Storage) Store(ctx context.Context, name string, reader io.Reader, contentType string) (string, error) {
	fullKey := s.getFullKey(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	s.logger.Debug("Stored photo", zap.String("bucket", s.bucket), zap.String("key", fullKey))
	return s.baseURL() + fullKey, nil
}

func (s *S3Storage) Delete(ctx context.Context, ref string) error {
	fullKey, ok := strings.CutPrefix(ref, s.baseURL())
	if !ok || fullKey == "" {
		return ErrInvalidReference
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (s *S3Storage) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
}

func (s *S3Storage) getFullKey(name string) string {
	if s.prefix != "" {
		return path.Join(s.prefix, name)
	}
	return name
}
