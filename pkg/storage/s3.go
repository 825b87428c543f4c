package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const (
	// MaxDocumentSize is the maximum allowed accreditation document size (10MB).
	MaxDocumentSize = 10 * 1024 * 1024
	// MaxImageSize is the maximum allowed event image size (5MB).
	MaxImageSize = 5 * 1024 * 1024
	// FolderDocuments is the S3 prefix for accreditation documents.
	FolderDocuments = "documentos"
	// FolderEventImages is the S3 prefix for event images.
	FolderEventImages = "eventos"
)

// Allowed upload MIME types by extension.
var (
	AllowedDocumentExtensions = map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
	}
	AllowedImageExtensions = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}
)

// S3Config holds S3 client configuration.
type S3Config struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	DocumentsBucket      string
	ImagesBucket         string
	PresignExpireMinutes int
}

// S3 provides object storage for accreditation documents and event images.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 client using credentials from config or the environment.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)))
	} else if logger != nil {
		logger.Warn("S3 client using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
	})
	return &S3{
		client:   client,
		uploader: uploader,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// ValidateDocumentType returns true if the filename extension is allowed for accreditation documents.
func ValidateDocumentType(filename string) bool {
	_, ok := AllowedDocumentExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// ValidateImageType returns true if the filename extension is allowed for event images.
func ValidateImageType(filename string) bool {
	_, ok := AllowedImageExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// ContentTypeForFilename returns the MIME type for an allowed filename extension.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ct, ok := AllowedDocumentExtensions[ext]; ok {
		return ct
	}
	if ct, ok := AllowedImageExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// DocumentKey returns the S3 object key for an accreditation document:
// documentos/{organizer_id}/{filename}.
func DocumentKey(organizerID int64, filename string) string {
	return path.Join(FolderDocuments, strconv.FormatInt(organizerID, 10), path.Base(filename))
}

// EventImageKey returns the S3 object key for an event image: eventos/{event_id}/{filename}.
func EventImageKey(eventID int64, filename string) string {
	return path.Join(FolderEventImages, strconv.FormatInt(eventID, 10), path.Base(filename))
}

// Upload streams a reader to S3 and returns the object URL.
func (s *S3) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, contentLength int64) (string, error) {
	var contentLengthPtr *int64
	if contentLength > 0 {
		contentLengthPtr = &contentLength
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: contentLengthPtr,
	}
	_, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.cfg.Region, key), nil
}

// UploadDocument uploads an accreditation document and returns its key.
func (s *S3) UploadDocument(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) error {
	_, err := s.Upload(ctx, s.cfg.DocumentsBucket, key, contentType, body, contentLength)
	return err
}

// UploadEventImage uploads an event image and returns its public URL.
func (s *S3) UploadEventImage(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error) {
	return s.Upload(ctx, s.cfg.ImagesBucket, key, contentType, body, contentLength)
}

// DeleteObject removes an object from S3.
func (s *S3) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// DeleteDocument removes an accreditation document from the documents bucket.
func (s *S3) DeleteDocument(ctx context.Context, key string) error {
	return s.DeleteObject(ctx, s.cfg.DocumentsBucket, key)
}

// DeleteEventImage removes an event image from the images bucket.
func (s *S3) DeleteEventImage(ctx context.Context, key string) error {
	return s.DeleteObject(ctx, s.cfg.ImagesBucket, key)
}

// GenerateDocumentDownloadURL returns a pre-signed GET URL for an accreditation document.
func (s *S3) GenerateDocumentDownloadURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.DocumentsBucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.PresignExpire()
	})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

// PresignExpire returns the configured presign duration.
func (s *S3) PresignExpire() time.Duration {
	if s.cfg.PresignExpireMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(s.cfg.PresignExpireMinutes) * time.Minute
}
