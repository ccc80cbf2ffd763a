package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"careflow/internal/config"
	"careflow/internal/port"
)

// reportStorage is the S3-backed implementation of port.ReportStorage. All
// original report files live under one bucket, keyed reports/<id>/<name>.
type reportStorage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewReportStorage builds the S3 client stack for the report bucket. An
// endpoint override switches to path-style addressing for MinIO in local
// and CI deployments.
func NewReportStorage(cfg *config.S3Config) (port.ReportStorage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3.NewReportStorage: load aws config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)
	return &reportStorage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

func (r *reportStorage) Upload(ctx context.Context, upload port.ReportUpload) (*port.StoredReport, error) {
	result, err := r.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(upload.Bucket),
		Key:         aws.String(upload.Key),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("reportStorage.Upload: %w", err)
	}

	stored := &port.StoredReport{Location: result.Location}
	if result.ETag != nil {
		stored.ETag = *result.ETag
	}
	return stored, nil
}

func (r *reportStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("reportStorage.Download: %w", err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("reportStorage.Download: read body: %w", err)
	}
	return data, nil
}

func (r *reportStorage) Delete(ctx context.Context, bucket, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("reportStorage.Delete: %w", err)
	}
	return nil
}

func (r *reportStorage) PresignDownload(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(time.Duration(expirySeconds)*time.Second))
	if err != nil {
		return "", fmt.Errorf("reportStorage.PresignDownload: %w", err)
	}
	return req.URL, nil
}
