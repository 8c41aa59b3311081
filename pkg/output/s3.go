package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 10 * time.Second

// S3Sink uploads images to an S3-compatible bucket
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Sink creates a sink that uploads to bucket, placing keys under prefix
func NewS3Sink(client s3iface.S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Name implements Sink
func (s *S3Sink) Name() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

// Key returns the object key used for name
func (s *S3Sink) Key(name string) string {
	return path.Join(s.prefix, name)
}

// Put uploads data as a single object
func (s *S3Sink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	objectKey := s.Key(key)
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return nil
}
