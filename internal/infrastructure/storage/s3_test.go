package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intranet-api/internal/domain"
)

// fakeBucket servidor S3 mínimo en path-style: /<bucket>/<key>.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/intranet/")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = string(body)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		v, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		_, _ = io.WriteString(w, v)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3(t *testing.T) (*S3, *fakeBucket) {
	t.Helper()
	fake := &fakeBucket{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(srv.URL),
		UsePathStyle:               true,
		Credentials:                credentials.NewStaticCredentialsProvider("test", "test", ""),
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	return newS3(client, "intranet", zerolog.Nop()), fake
}

func TestS3_SaveYOpen(t *testing.T) {
	s, fake := newTestS3(t)
	ctx := context.Background()
	assert.True(t, s.KeepsReplacedObjects())

	obj, err := s.Save(ctx, "123-1.pdf", strings.NewReader("pdf"), 3, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "123-1.pdf", obj.Key)
	assert.Contains(t, fake.objects, "123-1.pdf")

	fake.objects["otro.pdf"] = "contenido"
	rc, err := s.Open(ctx, "otro.pdf")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestS3_ObjetoInexistente(t *testing.T) {
	s, _ := newTestS3(t)
	ctx := context.Background()

	_, err := s.Open(ctx, "no-existe.pdf")
	assert.ErrorIs(t, err, domain.ErrPhysicalFileMissing)

	assert.NoError(t, s.Delete(ctx, "no-existe.pdf"))
}

func TestNewS3_SinBucket(t *testing.T) {
	_, err := NewS3(S3Config{Region: "us-east-1"}, zerolog.Nop())
	assert.ErrorIs(t, err, domain.ErrValidation)
}
