package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type S3Service struct {
	client     *s3.S3
	bucketName string
	region     string
}

func NewS3Service(region, bucketName string, accessKey, secretKey string) *S3Service {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
		Credentials: credentials.NewStaticCredentials(
			accessKey,
			secretKey,
			"",
		),
	}))

	return &S3Service{
		client:     s3.New(sess),
		bucketName: bucketName,
		region:     region,
	}
}

type UploadResult struct {
	Key         string
	URL         string
	FileName    string
	ContentType string
	Size        int64
}

// uploadImage validates and uploads a single image under the given key
// prefix. Listing photos and identity card scans share the same
// plumbing and only differ in prefix.
func (s *S3Service) uploadImage(file multipart.File, header *multipart.FileHeader, prefix string) (*UploadResult, error) {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = s.getContentTypeFromExtension(header.Filename)
	}

	if !s.isValidImageType(contentType) {
		return nil, fmt.Errorf("invalid file type: %s", contentType)
	}

	const maxSize = 10 * 1024 * 1024 // 10MB
	if header.Size > maxSize {
		return nil, fmt.Errorf("file size too large: %d bytes (max: %d bytes)", header.Size, maxSize)
	}

	fileExt := filepath.Ext(header.Filename)
	timestamp := time.Now().Format("2006/01/02")
	key := fmt.Sprintf("%s/%s/%s%s", prefix, timestamp, uuid.New().String(), fileExt)

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(key),
		Body:         bytes.NewReader(buffer.Bytes()),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=31536000"), // 1 year cache
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %v", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)

	return &UploadResult{
		Key:         key,
		URL:         url,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}, nil
}

// UploadListingImages uploads a batch of listing photos. If any upload
// fails, the ones that already made it are cleaned up.
func (s *S3Service) UploadListingImages(files []*multipart.FileHeader) ([]*UploadResult, error) {
	var results []*UploadResult
	var uploadErrors []string

	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("file %d: failed to open - %v", i+1, err))
			continue
		}

		result, err := s.uploadImage(file, fileHeader, "posts/images")
		file.Close()

		if err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("file %d (%s): %v", i+1, fileHeader.Filename, err))
			continue
		}

		results = append(results, result)
	}

	if len(uploadErrors) > 0 {
		for _, result := range results {
			s.DeleteImage(result.Key)
		}
		return nil, fmt.Errorf("upload errors: %s", strings.Join(uploadErrors, "; "))
	}

	return results, nil
}

// UploadAvatar uploads a profile picture.
func (s *S3Service) UploadAvatar(fileHeader *multipart.FileHeader) (*UploadResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	return s.uploadImage(file, fileHeader, "users/avatars")
}

// UploadDocument uploads an identity card scan for a lessor request.
func (s *S3Service) UploadDocument(fileHeader *multipart.FileHeader) (*UploadResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	return s.uploadImage(file, fileHeader, "lessor/documents")
}

// UploadBlogCover uploads a blog cover image.
func (s *S3Service) UploadBlogCover(fileHeader *multipart.FileHeader) (*UploadResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	return s.uploadImage(file, fileHeader, "blogs/covers")
}

func (s *S3Service) DeleteImage(key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Service) DeleteMultipleImages(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	var objects []*s3.ObjectIdentifier
	for _, key := range keys {
		if key != "" {
			objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(key)})
		}
	}

	if len(objects) == 0 {
		return nil
	}

	_, err := s.client.DeleteObjects(&s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucketName),
		Delete: &s3.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	return err
}

func (s *S3Service) isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	for _, validType := range validTypes {
		if strings.EqualFold(contentType, validType) {
			return true
		}
	}
	return false
}

func (s *S3Service) getContentTypeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
