package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/johncar-aircon/backoffice-api/config"
)

// ReportStore archives reconciliation reports
type ReportStore interface {
	PutReport(ctx context.Context, key string, body []byte) error
	GetReportURL(ctx context.Context, key string) (string, error)
}

// S3ReportStore keeps reports as JSON objects in a private bucket
type S3ReportStore struct {
	client *s3.Client
	bucket string
}

var reportStoreInstance ReportStore

// InitS3ReportStore builds the S3 client from the AWS settings in cfg
func InitS3ReportStore(cfg *appConfig.Config) (ReportStore, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = false
	})

	reportStoreInstance = &S3ReportStore{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}
	return reportStoreInstance, nil
}

// GetReportStore returns the configured store, nil when archiving is off
func GetReportStore() ReportStore {
	return reportStoreInstance
}

// SetReportStore sets the store instance (primarily for testing)
func SetReportStore(store ReportStore) {
	reportStoreInstance = store
}

// PutReport uploads a report body under key
func (s *S3ReportStore) PutReport(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to S3: %w", err)
	}
	return nil
}

// GetReportURL generates a presigned download URL valid for 1 hour
func (s *S3ReportStore) GetReportURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	log.Printf("Generated presigned URL for report %s", key)
	return request.URL, nil
}
