// Package storage uploads generated images to S3. When no bucket is
// configured the uploader is disabled and results stay inline.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadTimeout = 30 * time.Second

// Uploader stores generated images in S3
type Uploader struct {
	client    *s3.Client
	bucket    string
	region    string
	keyPrefix string
	enabled   bool
}

// NewUploader creates an S3 uploader. An empty bucket disables uploads,
// callers then return images inline.
func NewUploader(ctx context.Context, bucket, region, keyPrefix string) (*Uploader, error) {
	if bucket == "" {
		log.Println("📦 S3 Uploads: DISABLED (S3_BUCKET not set), images returned inline")
		return &Uploader{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for S3: %v", err)
		return &Uploader{enabled: false}, nil
	}

	log.Printf("📦 S3 Uploads: ✅ ENABLED (bucket: %s)", bucket)
	return &Uploader{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		keyPrefix: keyPrefix,
		enabled:   true,
	}, nil
}

// Enabled reports whether uploads are configured
func (u *Uploader) Enabled() bool {
	return u.enabled
}

// UploadImage stores one generated image and returns its public URL.
// The key layout is <prefix>/<requestID>/<source>.<ext>.
func (u *Uploader) UploadImage(ctx context.Context, requestID, source string, image []byte, mimeType string) (string, error) {
	if !u.enabled {
		return "", nil
	}

	key := fmt.Sprintf("%s/%s/%s%s", u.keyPrefix, requestID, source, extensionFor(mimeType))

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := u.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
