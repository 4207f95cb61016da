package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
)

var _ ports.FileStorage = (*S3)(nil)

// S3Config conexión a un servicio compatible con S3 (AWS, MinIO, CEPH).
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// S3 guarda los archivos como objetos de un bucket. Las llamadas pasan por un circuit breaker
// para no bloquear las peticiones cuando el servicio externo está caído.
type S3 struct {
	client  *s3.Client
	bucket  string
	breaker *gobreaker.CircuitBreaker
}

// NewS3 construye el cliente con credenciales estáticas y direccionamiento path-style.
func NewS3(cfg S3Config, log zerolog.Logger) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket S3 vacío", domain.ErrValidation)
	}
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	return newS3(s3.New(opts), cfg.Bucket, log), nil
}

func newS3(client *s3.Client, bucket string, log zerolog.Logger) *S3 {
	log = log.With().Str("component", "storage").Str("driver", StorageS3).Logger()
	return &S3{
		client: client,
		bucket: bucket,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "s3",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			// Un objeto inexistente es una respuesta válida del servicio.
			IsSuccessful: func(err error) bool {
				return err == nil || isS3NotFound(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
					Msg("cambio de estado del circuit breaker")
			},
		}),
	}
}

func (s *S3) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ports.StoredObject, error) {
	_, err := s.breaker.Execute(func() (any, error) {
		return s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          r,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(contentType),
		})
	})
	observe(StorageS3, "save", err)
	if err != nil {
		return ports.StoredObject{}, fmt.Errorf("s3 upload %s/%s: %w", s.bucket, key, err)
	}
	return ports.StoredObject{Key: key, Size: size}, nil
}

func (s *S3) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.breaker.Execute(func() (any, error) {
		return s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	})
	if err != nil {
		if isS3NotFound(err) {
			observe(StorageS3, "open", nil)
			return nil, domain.ErrPhysicalFileMissing
		}
		observe(StorageS3, "open", err)
		return nil, fmt.Errorf("s3 download %s/%s: %w", s.bucket, key, err)
	}
	observe(StorageS3, "open", nil)
	return out.(*s3.GetObjectOutput).Body, nil
}

// Delete en S3 es idempotente: borrar una clave inexistente no devuelve error.
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	})
	if err != nil && !isS3NotFound(err) {
		observe(StorageS3, "delete", err)
		return fmt.Errorf("s3 delete %s/%s: %w", s.bucket, key, err)
	}
	observe(StorageS3, "delete", nil)
	return nil
}

// KeepsReplacedObjects es true: los objetos reemplazados quedan en el bucket.
func (s *S3) KeepsReplacedObjects() bool { return true }

func isS3NotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
