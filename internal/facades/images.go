package facades

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
)

// ObjectPutter is the part of the S3 API the facade needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStoreFacade uploads recipe thumbnails to an S3-compatible bucket and
// hands back durable public URLs.
type ImageStoreFacade struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

// NewS3Client builds an S3 client for the given endpoint and static credentials.
// Works against MinIO as well as AWS.
func NewS3Client(ctx context.Context, endpoint, region, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// NewImageStoreFacade creates a facade over an S3 client.
// baseURL is the public prefix under which uploaded objects are reachable.
func NewImageStoreFacade(client ObjectPutter, bucket, baseURL string) *ImageStoreFacade {
	return &ImageStoreFacade{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// storageKey builds a date-partitioned object key preserving the file extension.
func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("thumbnails/%d/%d/%d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}

// Upload streams an image to the bucket and returns its public URL.
func (f *ImageStoreFacade) Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := storageKey(filename)

	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Log.Errorw("failed to upload image", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s", f.baseURL, f.bucket, key)
	logger.Log.Infow("image uploaded", "bucket", f.bucket, "key", key, "url", url)

	return url, nil
}
