package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"imoveisuniao_backend/pkg/config"
)

// Client wraps an S3-compatible bucket used for property media.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

func New(cfg config.StorageConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &Client{
		s3:        client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// ObjectKey builds a unique, URL-safe key under the property's folder.
func ObjectKey(propertySlug, filename string) string {
	ext := filepath.Ext(filename)
	uniqueID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
	return filepath.Join("properties", slug.Make(propertySlug), "images", uniqueID+ext)
}

// Upload stores the object and returns its public URL.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("could not upload file: %v", err)
	}

	return fmt.Sprintf("%s/%s", c.publicURL, key), nil
}

// Delete removes the object behind a public URL. URLs outside our bucket are ignored.
func (c *Client) Delete(ctx context.Context, fullURL string) error {
	if !c.Owns(fullURL) {
		return nil
	}

	key := strings.TrimPrefix(fullURL, c.publicURL+"/")

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	if _, err := c.s3.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("could not delete file: %v", err)
	}

	return nil
}

// Owns reports whether the URL points into our bucket.
func (c *Client) Owns(fullURL string) bool {
	return strings.HasPrefix(fullURL, c.publicURL+"/")
}
