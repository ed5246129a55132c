package emit

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/errors"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	KeyPrefix string
	Ext       string
	UseSSL    bool
}

// S3Sink uploads descriptors to an S3-compatible bucket.
type S3Sink struct {
	initErr   error
	client    *minio.Client
	bucket    string
	region    string
	keyPrefix string
	ext       string
	initOnce  sync.Once
}

func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.InvalidInput(errors.PhaseEmit, "s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.InvalidInput(errors.PhaseEmit, "s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.InvalidInput(errors.PhaseEmit, "s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidInput, err, "init s3 client")
	}

	return &S3Sink{
		client:    client,
		bucket:    bucket,
		region:    region,
		keyPrefix: cfg.KeyPrefix,
		ext:       extOrDefault(cfg.Ext),
	}, nil
}

// Key returns the object key a descriptor named name is stored under.
func (s *S3Sink) Key(name string) string {
	return s.keyPrefix + name + s.ext
}

func (s *S3Sink) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Sink) Persist(ctx context.Context, doc *descriptor.Document, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := descriptor.Marshal(doc)
	if err != nil {
		return err
	}

	key := s.Key(name)
	location := s.bucket + "/" + key
	if err := s.ensureBucket(ctx); err != nil {
		return errors.WriteFailed(location, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/xml",
	})
	if err != nil {
		return errors.WriteFailed(location, err)
	}

	Logger().Info("descriptor uploaded",
		zap.String("name", name),
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return nil
}
