package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client builds a client for the S3-compatible backup bucket
// (R2, MinIO or AWS). Returns nil when uploads are not configured.
func NewS3Client(ctx context.Context, b BackupConfig) (*s3.Client, error) {
	if !b.S3Enabled() {
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.S3.AccessKey,
			b.S3.SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.S3.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if b.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}
