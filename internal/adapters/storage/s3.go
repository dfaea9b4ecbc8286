package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"boothly/internal/domain"
)

// ErrObjectExists is returned by Put when overwrite is false and the path is taken.
var ErrObjectExists = fmt.Errorf("object already exists: %w", domain.ErrConflict)

// S3Config holds configuration for S3-compatible object storage.
type S3Config struct {
	Region          string
	Endpoint        string // optional, for MinIO / R2 / Supabase storage
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
	PublicBaseURL   string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client  putObjectAPI
	baseURL string
}

// NewS3Store returns an ObjectStore backed by S3 (or any S3-compatible endpoint).
func NewS3Store(cfg S3Config) domain.ObjectStore {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		UsePathStyle: cfg.ForcePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return newS3Store(s3.New(opts), cfg.PublicBaseURL)
}

func newS3Store(client putObjectAPI, publicBaseURL string) *s3Store {
	return &s3Store{client: client, baseURL: strings.TrimSuffix(publicBaseURL, "/")}
}

func (s *s3Store) Put(ctx context.Context, bucket, path string, upload *domain.Upload, overwrite bool) (*domain.StoredObject, error) {
	if upload == nil || upload.Body == nil {
		return nil, errors.New("upload body is required")
	}
	// The SDK needs a seekable body to sign the payload.
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return nil, fmt.Errorf("%s/%s: %w", bucket, path, ErrObjectExists)
		}
		return nil, fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}
	return &domain.StoredObject{Bucket: bucket, Path: path, URL: s.PublicURL(bucket, path)}, nil
}

func (s *s3Store) PublicURL(bucket, path string) string {
	return publicURL(s.baseURL, bucket, path)
}

func publicURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
