package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestNewS3Storage_ExigeBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), Options{}, zerolog.Nop())
	assert.Error(t, err)
}

// A assinatura é local: não precisa de servidor.
func TestPresignGet(t *testing.T) {
	s, err := NewS3Storage(context.Background(), Options{
		Endpoint:     "localhost:9000",
		Bucket:       "barber-files",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		UsePathStyle: true,
	}, zerolog.Nop())
	require.NoError(t, err)

	url, err := s.PresignGet(context.Background(), "units/u-1/suppliers/s-1/nota.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/barber-files/units/u-1/suppliers/s-1/nota.pdf?"))
	assert.Contains(t, url, "X-Amz-Expires=900")
}
