package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Environment variables for object storage access.
const (
	EnvEndpoint  = "LABUP_S3_ENDPOINT"
	EnvRegion    = "LABUP_S3_REGION"
	EnvAccessKey = "LABUP_S3_ACCESS_KEY"
	EnvSecretKey = "LABUP_S3_SECRET_KEY"
)

// DefaultRegion is used when no region is configured. Self-hosted
// object stores accept any region string.
const DefaultRegion = "us-east-1"

// Client wraps the S3 client for topology downloads.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates an S3 client. With empty access keys the default
// AWS credential chain applies, so the standard AWS_* environment
// variables keep working. An empty endpoint means real AWS S3.
func NewClient(endpoint, region, accessKey, secretKey string) (*Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true // MinIO-style object stores want path-style addressing
	})

	return &Client{s3: client, region: region}, nil
}

// NewClientFromEnv builds a client from the LABUP_S3_* environment
// variables.
func NewClientFromEnv() (*Client, error) {
	region := os.Getenv(EnvRegion)
	if region == "" {
		region = DefaultRegion
	}
	return NewClient(os.Getenv(EnvEndpoint), region, os.Getenv(EnvAccessKey), os.Getenv(EnvSecretKey))
}

// GetObject downloads an object from a bucket.
func (c *Client) GetObject(ctx context.Context, bucketName, key string) ([]byte, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucketName, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return buf.Bytes(), nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "NoSuchBucket" || code == "404"
	}

	return false
}
