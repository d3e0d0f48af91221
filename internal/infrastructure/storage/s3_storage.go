// Package storage guarda arquivos de fornecedores em S3 ou compatível (MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
)

var _ ports.ObjectStorage = (*S3Storage)(nil)

// Options conexão com o bucket.
type Options struct {
	Endpoint     string // vazio = AWS
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	UsePathStyle bool
}

// S3Storage implementa ports.ObjectStorage com aws-sdk-go-v2.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	log     zerolog.Logger
}

// NewS3Storage monta o cliente com credenciais estáticas.
func NewS3Storage(ctx context.Context, opts Options, log zerolog.Logger) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: bucket é obrigatório")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: configurar aws: %w", err)
	}
	endpoint := endpointURL(opts.Endpoint, opts.UseSSL)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &S3Storage{client: client, presign: s3.NewPresignClient(client), bucket: opts.Bucket, log: log}, nil
}

// endpointURL completa o esquema quando o endpoint vem só com host:porta.
func endpointURL(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// EnsureBucket cria o bucket se ainda não existir (chamado na subida).
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("storage: verificar bucket: %w", err)
	}
	s.log.Info().Str("bucket", s.bucket).Msg("criando bucket")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		return fmt.Errorf("storage: criar bucket: %w", err)
	}
	return nil
}

// Put envia o objeto.
func (s *S3Storage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: enviar %s: %w", key, err)
	}
	return nil
}

// PresignGet URL temporária de download.
func (s *S3Storage) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("storage: assinar %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete remove o objeto; objeto inexistente não é erro.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: remover %s: %w", key, err)
	}
	return nil
}
