package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// S3Config holds configuration for an S3-compatible bucket (AWS S3, DigitalOcean Spaces, MinIO)
type S3Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string // CDN or custom domain; defaults to https://<bucket>.<endpoint>
}

// S3Host uploads photos as public-read objects
type S3Host struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

// NewS3Host creates a new S3-compatible image host
func NewS3Host(cfg S3Config) (*S3Host, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return newS3Host(s3.New(sess), cfg), nil
}

func newS3Host(client s3iface.S3API, cfg S3Config) *S3Host {
	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		if host == "" {
			host = fmt.Sprintf("s3.%s.amazonaws.com", cfg.Region)
		}
		publicURL = fmt.Sprintf("https://%s.%s", cfg.Bucket, strings.TrimRight(host, "/"))
	}
	return &S3Host{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

// Upload stores the content under folder with a generated key and returns its public URL.
// The content is buffered so the request can be signed and its type detected.
func (h *S3Host) Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := ObjectKey(folder, filename)
	contentType := mimetype.Detect(data).String()

	_, err = h.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error().Err(err).Str("bucket", h.bucket).Str("key", key).Msg("S3 upload failed")
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.Info().Str("filename", filename).Str("key", key).Str("contentType", contentType).Msg("Photo uploaded to bucket")
	return h.publicURL + "/" + key, nil
}

// ObjectKey generates a unique object key for filename under folder
func ObjectKey(folder, filename string) string {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
