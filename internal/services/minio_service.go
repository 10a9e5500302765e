package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"nodeBoard/configs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// publicReadPolicy lets browsers load generated files straight from the bucket.
const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
	bucketName  string
}

func NewMinioService(ctx context.Context, config *configs.Config) (*MinioService, error) {
	endpoint := config.Viper.GetString("minio.endpoint")
	accessKeyID := config.Viper.GetString("minio.access_key_id")
	secretAccessKey := config.Viper.GetString("minio.secret_access_key")
	useSSL := config.Viper.GetBool("minio.use_ssl")
	bucketName := config.Viper.GetString("minio.bucket")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := minioClient.BucketExists(ctx, bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("minio: creating bucket %s: %w", bucketName, err)
		}
		slog.Info("minio bucket already exists", "bucket", bucketName)
	} else {
		slog.Info("minio bucket created", "bucket", bucketName)
		if err := minioClient.SetBucketPolicy(ctx, bucketName, fmt.Sprintf(publicReadPolicy, bucketName)); err != nil {
			return nil, fmt.Errorf("minio: setting policy on %s: %w", bucketName, err)
		}
	}

	return &MinioService{
		minioClient: minioClient,
		config:      config,
		bucketName:  bucketName,
	}, nil
}

func (ms *MinioService) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	info, err := ms.minioClient.PutObject(ctx, ms.bucketName, fileName, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return ms.GetPublicFileUrl(info.Key), nil
}

func (ms *MinioService) DeleteFile(ctx context.Context, fileName string) error {
	return ms.minioClient.RemoveObject(ctx, ms.bucketName, fileName, minio.RemoveObjectOptions{})
}

func (ms *MinioService) GetPublicFileUrl(fileKey string) string {
	scheme := "http"
	if ms.config.Viper.GetBool("minio.use_ssl") {
		scheme = "https"
	}
	externalEndpoint := ms.config.Viper.GetString("minio.external_endpoint")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, externalEndpoint, ms.bucketName, fileKey)
}
