package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3Options configures S3ImageStore. PublicBaseURL defaults to
// BaseEndpoint/Bucket, which suits a MinIO bucket with anonymous reads.
type S3Options struct {
	User          string
	Password      string
	Bucket        string
	Region        string
	BaseEndpoint  string
	PublicBaseURL string
}

// S3ImageStore is an ImageStore on top of an S3-compatible service.
type S3ImageStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

// NewS3ImageStore builds the S3 clients. No request is sent.
func NewS3ImageStore(ctx context.Context, opts S3Options) (*S3ImageStore, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.User,
			opts.Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := opts.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(opts.BaseEndpoint, "/") + "/" + opts.Bucket
	}

	return &S3ImageStore{
		client:  client,
		presign: newS3PresignClient(client),
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, ownerID, contentType string, data []byte) (string, error) {
	ext, err := Extension(contentType)
	if err != nil {
		return "", err
	}
	key := NewKey(ownerID, ext)

	_, err = putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *S3ImageStore) PresignUpload(ctx context.Context, ownerID, contentType string) (*PresignedUpload, error) {
	ext, err := Extension(contentType)
	if err != nil {
		return nil, err
	}
	key := NewKey(ownerID, ext)

	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return &PresignedUpload{UploadURL: req.URL, URL: s.publicURL(key)}, nil
}

func (s *S3ImageStore) publicURL(key string) string {
	return s.baseURL + "/" + key
}
