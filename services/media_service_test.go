package services

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/unified-blog-backend/errs"
)

func newTestPresigner() *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	return s3.NewPresignClient(client)
}

func TestPresignFeaturedImageUpload(t *testing.T) {
	svc := NewMediaService(newTestPresigner(), "blog-media", "https://cdn.example")
	author := uuid.New()

	ticket, err := svc.PresignFeaturedImageUpload(context.Background(), author, "Cover.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.Key, "featured/"+author.String()+"/"))
	assert.True(t, strings.HasSuffix(ticket.Key, ".png"))
	assert.Equal(t, "https://cdn.example/"+ticket.Key, ticket.PublicURL)
	assert.Equal(t, "PUT", ticket.Method)
	assert.Contains(t, ticket.UploadURL, "blog-media")
	assert.Contains(t, ticket.UploadURL, "X-Amz-Signature")
	assert.False(t, ticket.ExpiresAt.IsZero())
}

func TestPresignFeaturedImageUpload_Rejections(t *testing.T) {
	t.Run("non-image content", func(t *testing.T) {
		svc := NewMediaService(newTestPresigner(), "blog-media", "")
		_, err := svc.PresignFeaturedImageUpload(context.Background(), uuid.New(), "notes.pdf", "application/pdf")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnsupportedMedia)
	})

	t.Run("no bucket configured", func(t *testing.T) {
		svc := NewMediaService(nil, "", "")
		_, err := svc.PresignFeaturedImageUpload(context.Background(), uuid.New(), "a.png", "image/png")
		assert.True(t, errs.IsServiceUnavailableError(err))
	})
}

func TestNewMediaServiceDefaultsPublicURL(t *testing.T) {
	svc := NewMediaService(newTestPresigner(), "blog-media", "")
	assert.Equal(t, "https://blog-media.s3.amazonaws.com", svc.publicBaseURL)
}
