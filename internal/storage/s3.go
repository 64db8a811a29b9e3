package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BelezaApps/salon-agenda/internal/config"
)

// ImageStore guarda imagens de galeria no bucket S3 (ou compatível,
// via S3_ENDPOINT). A API é a do colaborador externo: salvar bytes e
// receber a URL pública; apagar pela chave.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewImageStore(cfg *config.Config) *ImageStore {
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ImageStore{
		client:  s3.New(opts),
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *ImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}
