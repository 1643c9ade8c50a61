package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/config"
)

// allowedImageTypes maps acceptable content types to the stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// Store writes uploaded images to an S3 bucket and hands back their public
// URL.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	maxBytes      int64
}

func NewStore(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes:      cfg.MaxUploadBytes,
	}, nil
}

// Put stores body under a fresh uuid key and returns the public URL.
// Content type must be an allowed image type and size must be within the
// configured bound. The uploader's id is kept on the object metadata.
func (s *Store) Put(ctx context.Context, body io.Reader, size int64, contentType, uploadedBy string) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
	if size <= 0 || size > s.maxBytes {
		return "", fmt.Errorf("image size must be between 1 byte and %d bytes", s.maxBytes)
	}

	key := path.Join("uploads", uuid.NewString()+ext)

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if uploadedBy != "" {
		in.Metadata = map[string]string{"uploaded-by": uploadedBy}
	}

	_, err := s.client.PutObject(ctx, in)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}
