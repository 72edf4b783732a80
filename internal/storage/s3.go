package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// Config 為 S3 相容儲存（Cloudflare R2）的連線設定
type Config struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// Enabled 只有 Endpoint 與 Bucket 都設定時才啟用封存
func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultConfig = awsconfig.LoadDefaultConfig

// ObjectStore 將物件寫入單一 bucket
type ObjectStore struct {
	client putObjectAPI
	bucket string
}

// NewObjectStore 以靜態金鑰建立 S3 client，endpoint 指向 R2
func NewObjectStore(ctx context.Context, cfg Config) (*ObjectStore, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := loadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return &ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

// Put 上傳 body 至 key
func (s *ObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Wrapf(err, "put %s/%s", s.bucket, key)
	}
	return nil
}
