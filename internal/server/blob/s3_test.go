package blob

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^items/u1/2025/03/10/[0-9a-f-]{36}\.png$`)

func stubSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := putObject
	origPresign := presignPutObject
	origNow := timeNow
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		putObject = origPut
		presignPutObject = origPresign
		timeNow = origNow
	})

	timeNow = func() time.Time { return time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC) }
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func newStore(t *testing.T, opts S3Options) *S3ImageStore {
	t.Helper()
	s, err := NewS3ImageStore(context.Background(), opts)
	require.NoError(t, err)
	return s
}

func TestNewS3ImageStore_AppliesOptions(t *testing.T) {
	stubSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-north-1", lo.Region)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minio", creds.AccessKeyID)
		return aws.Config{}, nil
	}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	s := newStore(t, S3Options{User: "minio", Password: "pw", Bucket: "pantry", Region: "eu-north-1", BaseEndpoint: "http://127.0.0.1:9000/"})

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000/pantry/k", s.publicURL("k"))
}

func TestNewS3ImageStore_ConfigError(t *testing.T) {
	stubSeams(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3ImageStore(context.Background(), S3Options{})
	assert.ErrorContains(t, err, "load aws config: no config")
}

func TestUpload(t *testing.T) {
	stubSeams(t)

	var got *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		body, _ = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, nil
	}

	s := newStore(t, S3Options{Bucket: "pantry", PublicBaseURL: "https://cdn.example/"})
	url, err := s.Upload(context.Background(), "u1", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "pantry", *got.Bucket)
	assert.Equal(t, "image/png", *got.ContentType)
	assert.Regexp(t, keyPattern, *got.Key)
	assert.Equal(t, []byte("png-bytes"), body)
	assert.Equal(t, "https://cdn.example/"+*got.Key, url)
}

func TestUpload_RejectsContentType(t *testing.T) {
	stubSeams(t)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		t.Fatal("must not upload")
		return nil, nil
	}

	s := newStore(t, S3Options{Bucket: "pantry"})
	_, err := s.Upload(context.Background(), "u1", "application/pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpload_Error(t *testing.T) {
	stubSeams(t)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}

	s := newStore(t, S3Options{Bucket: "pantry"})
	_, err := s.Upload(context.Background(), "u1", "image/jpeg", []byte("x"))
	assert.ErrorContains(t, err, "failed to upload to S3: access denied")
}

func TestPresignUpload(t *testing.T) {
	stubSeams(t)

	var key string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, PresignExpiry, po.Expires)
		assert.Equal(t, "image/png", *in.ContentType)
		key = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://s3/presigned?sig=1"}, nil
	}

	s := newStore(t, S3Options{Bucket: "pantry", BaseEndpoint: "http://minio:9000"})
	up, err := s.PresignUpload(context.Background(), "u1", "image/png")
	require.NoError(t, err)

	assert.Regexp(t, keyPattern, key)
	assert.Equal(t, "https://s3/presigned?sig=1", up.UploadURL)
	assert.Equal(t, "http://minio:9000/pantry/"+key, up.URL)
}

func TestPresignUpload_Error(t *testing.T) {
	stubSeams(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign boom")
	}

	s := newStore(t, S3Options{Bucket: "pantry"})
	_, err := s.PresignUpload(context.Background(), "u1", "image/gif")
	assert.ErrorContains(t, err, "presign boom")
}

func TestExtension(t *testing.T) {
	for ct, want := range map[string]string{"image/jpeg": ".jpg", "image/png": ".png", "image/gif": ".gif", "image/webp": ".webp"} {
		got, err := Extension(ct)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := Extension("text/plain")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
