// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/models"
)

const (
	maxImageSize     = 10 * 1024 * 1024 // 10MB
	maxImagesPerCall = 10
	productFolder    = "products"
)

var allowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
	now      func() time.Time
}

// UploadResult is a stored blob. URL is directly fetchable.
type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local mode: blobs are written to Server.UploadDir and served under /uploads.
		return &StorageService{config: cfg, now: time.Now}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(cfg, s3.New(sess)), nil
}

func NewStorageServiceWithClient(cfg *config.Config, client s3iface.S3API) *StorageService {
	return &StorageService{
		s3Client: client,
		config:   cfg,
		now:      time.Now,
	}
}

// UploadProductImages stores every image and returns them in request order.
// Nothing is stored when any file fails validation.
func (s *StorageService) UploadProductImages(ctx context.Context, headers []*multipart.FileHeader) ([]UploadResult, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no images provided", models.ErrInvalidInput)
	}
	if len(headers) > maxImagesPerCall {
		return nil, fmt.Errorf("%w: at most %d images per upload", models.ErrInvalidInput, maxImagesPerCall)
	}

	contents := make([][]byte, len(headers))
	for i, header := range headers {
		data, err := s.readImage(header)
		if err != nil {
			return nil, err
		}
		contents[i] = data
	}

	results := make([]UploadResult, 0, len(headers))
	for i, header := range headers {
		result, err := s.store(ctx, contents[i], s.generateFileName(header.Filename, productFolder), header.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	logrus.WithField("count", len(results)).Info("Product images uploaded")
	return results, nil
}

func (s *StorageService) readImage(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxImageSize {
		return nil, fmt.Errorf("%w: file %s exceeds maximum size of %d bytes", models.ErrInvalidInput, header.Filename, maxImageSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedType := range allowedImageTypes {
		if ext == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: file type %s is not allowed", models.ErrInvalidInput, ext)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !isValidImageType(data) {
		return nil, fmt.Errorf("%w: %s is not a valid image", models.ErrInvalidInput, header.Filename)
	}
	return data, nil
}

func (s *StorageService) store(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	if s.s3Client == nil {
		path := filepath.Join(s.config.Server.UploadDir, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write file: %w", err)
		}
		return &UploadResult{
			URL:      s.localURL(key),
			Key:      key,
			Size:     int64(len(data)),
			MimeType: contentType,
		}, nil
	}

	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.Server.UploadDir, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func (s *StorageService) generateFileName(originalName, folder string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := s.now().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", folder, timestamp, uuid.NewString()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func (s *StorageService) localURL(key string) string {
	return fmt.Sprintf("http://%s:%s/uploads/%s", s.config.Server.Host, s.config.Server.Port, key)
}

func isValidImageType(buffer []byte) bool {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return true
	case len(buffer) >= 8 && bytes.Equal(buffer[:4], []byte{0x89, 'P', 'N', 'G'}):
		return true
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return true
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return true
	}
	return false
}
