package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner issues upload URLs for a bucket.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
}

// putObjectPresigner is satisfied by *s3.PresignClient.
type putObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Presigner signs PUT requests against one bucket.
type S3Presigner struct {
	client  putObjectPresigner
	bucket  string
	expires time.Duration
}

func NewS3Presigner(client *s3.Client, bucket string, expires time.Duration) *S3Presigner {
	if expires <= 0 {
		expires = 15 * time.Minute
	}
	return &S3Presigner{client: s3.NewPresignClient(client), bucket: bucket, expires: expires}
}

func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}
