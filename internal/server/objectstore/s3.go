// Package objectstore presigns S3 (or S3-compatible) URLs for recipe images,
// so image bytes travel between client and bucket without touching the server.
package objectstore

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Options configures an S3Presigner.
type Options struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	TTL          time.Duration
}

// S3Presigner issues short-lived PUT and GET URLs for one bucket.
type S3Presigner struct {
	pc     *s3.PresignClient
	bucket string
	ttl    time.Duration
}

// NewS3Presigner loads AWS config (static credentials when given) and
// points the client at BaseEndpoint with path-style addressing when set.
func NewS3Presigner(ctx context.Context, o Options) (*S3Presigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	ttl := o.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3Presigner{pc: s3.NewPresignClient(client), bucket: o.Bucket, ttl: ttl}, nil
}

// PresignPut returns a URL the client may PUT an object of contentType to.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := presignPutObject(p.pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

// PresignGet returns a URL to download key.
func (p *S3Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(p.pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExtension returns the file extension for an accepted image content
// type and false for anything else.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := extensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// NewImageKey returns a fresh object key under the owner's prefix,
// e.g. recipes/<owner>/2025/05/01/<uuid>.png.
func NewImageKey(ownerID, ext string, now time.Time) string {
	return path.Join("recipes", ownerID, now.Format("2006/01/02"), uuid.NewString()+ext)
}

// ValidImageKey reports whether key looks like one produced by NewImageKey.
func ValidImageKey(key string) bool {
	if !strings.HasPrefix(key, "recipes/") || strings.Contains(key, "..") {
		return false
	}
	return path.Clean(key) == key
}
