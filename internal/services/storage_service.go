// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
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

	"github.com/javajoker/storefront-backend/internal/config"
)

const productImageFolder = "products"

type StorageService struct {
	s3Client s3iface.S3API
	aws      config.AWSConfig
	storage  config.StorageConfig
	options  UploadOptions
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

// ProductImageOptions are the limits applied to product image uploads.
func ProductImageOptions() UploadOptions {
	return UploadOptions{
		Folder:       productImageFolder,
		MaxSize:      10 * 1024 * 1024, // 10MB
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
	}
}

// NewStorageService uploads to S3 when AWS credentials are configured and to
// the local uploads directory otherwise.
func NewStorageService(awsCfg config.AWSConfig, storageCfg config.StorageConfig) (*StorageService, error) {
	s := &StorageService{
		aws:     awsCfg,
		storage: storageCfg,
		options: ProductImageOptions(),
	}

	if awsCfg.AccessKeyID == "" {
		return s, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(awsCfg.Region),
		Credentials: credentials.NewStaticCredentials(
			awsCfg.AccessKeyID,
			awsCfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s.s3Client = s3.New(sess)
	return s, nil
}

// NewStorageServiceWithClient is used when the S3 client is built elsewhere.
func NewStorageServiceWithClient(client s3iface.S3API, awsCfg config.AWSConfig, storageCfg config.StorageConfig) *StorageService {
	return &StorageService{
		s3Client: client,
		aws:      awsCfg,
		storage:  storageCfg,
		options:  ProductImageOptions(),
	}
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	// Validate file size
	if s.options.MaxSize > 0 && header.Size > s.options.MaxSize {
		return nil, fmt.Errorf("%w: file size %d bytes exceeds maximum allowed size %d bytes", ErrInvalidImage, header.Size, s.options.MaxSize)
	}

	// Validate file type
	fileExt := strings.ToLower(filepath.Ext(header.Filename))
	if !s.isAllowedExtension(fileExt) {
		return nil, fmt.Errorf("%w: file type %q is not allowed", ErrInvalidImage, fileExt)
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, s.options.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > s.options.MaxSize {
		return nil, fmt.Errorf("%w: file exceeds maximum allowed size", ErrInvalidImage)
	}

	if !isValidImageType(fileBytes) {
		return nil, fmt.Errorf("%w: unrecognized image content", ErrInvalidImage)
	}

	contentType := http.DetectContentType(fileBytes)
	key := generateFileName(header.Filename, s.options.Folder)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType)
	}

	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.storage.UploadsDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.storage.PublicBaseURL, "/"), key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.storage.UploadsDir, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.aws.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// KeyFromURL reports the storage key behind a URL this service handed out.
// URLs pointing anywhere else are not ours to delete.
func (s *StorageService) KeyFromURL(url string) (string, bool) {
	var prefix string
	if s.s3Client != nil {
		prefix = s.getS3URL("")
	} else {
		prefix = strings.TrimRight(s.storage.PublicBaseURL, "/") + "/uploads/"
	}

	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if !strings.HasPrefix(key, s.options.Folder+"/") || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

func (s *StorageService) isAllowedExtension(ext string) bool {
	if len(s.options.AllowedTypes) == 0 {
		return true
	}
	for _, allowedType := range s.options.AllowedTypes {
		if ext == allowedType {
			return true
		}
	}
	return false
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.aws.S3Bucket, s.aws.Region, key)
}

func generateFileName(originalName, folder string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}

// isValidImageType checks the file signature for JPEG, PNG and GIF.
func isValidImageType(buffer []byte) bool {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return true
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return true
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return true
	}
	return false
}
