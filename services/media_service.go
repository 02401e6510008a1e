package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/errs"
)

const defaultUploadExpiry = 15 * time.Minute

// Presigner is the part of s3.PresignClient used for uploads.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadTicket lets a client upload a featured image straight to the bucket.
// Key is what the post stores in featuredImage.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MediaService struct {
	presigner     Presigner
	bucket        string
	publicBaseURL string
	expiry        time.Duration
	logger        zerolog.Logger
}

// NewMediaService returns a service that signs uploads into bucket. With an
// empty bucket every request fails as unavailable.
func NewMediaService(presigner Presigner, bucket, publicBaseURL string) *MediaService {
	if publicBaseURL == "" && bucket != "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &MediaService{
		presigner:     presigner,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		expiry:        defaultUploadExpiry,
		logger:        log.With().Str("service", "media").Logger(),
	}
}

// PresignFeaturedImageUpload issues a presigned PUT for one image owned by authorID.
func (s *MediaService) PresignFeaturedImageUpload(ctx context.Context, authorID uuid.UUID, fileName, contentType string) (UploadTicket, error) {
	if s.presigner == nil || s.bucket == "" {
		return UploadTicket{}, errs.NewServiceUnavailableError("media uploads")
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return UploadTicket{}, errs.NewUnsupportedMediaError(contentType)
	}

	key := fmt.Sprintf("featured/%s/%s%s", authorID, uuid.New(), strings.ToLower(path.Ext(fileName)))
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return UploadTicket{}, errs.NewInternalErrorWithCause("failed to presign upload", err)
	}

	s.logger.Debug().Str("key", key).Str("authorID", authorID.String()).Msg("Presigned featured image upload")
	return UploadTicket{
		UploadURL: req.URL,
		Method:    req.Method,
		Key:       key,
		PublicURL: BuildObjectURL(s.publicBaseURL, key),
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}
