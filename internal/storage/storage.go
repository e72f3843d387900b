// Package storage uploads files to Supabase Storage through its S3
// compatible endpoint and hands back public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"

	"github.com/angelofallars/crewdesk/internal/config"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

const defaultCacheControl = "max-age=3600"

// Object is a file to store.
type Object struct {
	Bucket string
	Key    string
	Data   []byte
	// Upsert replaces an existing object under the same key.
	Upsert bool
}

// Uploaded describes a stored object.
type Uploaded struct {
	FilePath    string `json:"file_path"`
	PublicURL   string `json:"public_url"`
	ContentType string `json:"content_type"`
}

type Service struct {
	client        *s3.Client
	publicBaseURL string
}

// NewService returns nil when storage is disabled in cfg.
func NewService(ctx context.Context, cfg *config.Configuration) (*Service, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.Storage.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey, cfg.Storage.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load storage config").
			Mark(ierr.ErrSystem)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		o.UsePathStyle = true
	})

	return &Service{
		client:        client,
		publicBaseURL: strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

// Upload stores obj and returns its public URL. Unless obj.Upsert is set an
// existing object under the same key is left untouched and an error is
// returned.
func (s *Service) Upload(ctx context.Context, obj Object) (*Uploaded, error) {
	contentType := DetectContentType(obj.Data)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(obj.Bucket),
		Key:          aws.String(obj.Key),
		Body:         bytes.NewReader(obj.Data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(defaultCacheControl),
	}
	if !obj.Upsert {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The file could not be uploaded.").
			WithMessagef("bucket:%s, key:%s", obj.Bucket, obj.Key).
			Mark(ierr.ErrHTTPClient)
	}

	return &Uploaded{
		FilePath:    obj.Key,
		PublicURL:   PublicURL(s.publicBaseURL, obj.Bucket, obj.Key),
		ContentType: contentType,
	}, nil
}

// PublicURL joins the public object base URL with bucket and key.
func PublicURL(baseURL, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), path.Join(append([]string{bucket}, segments...)...))
}

// DetectContentType sniffs data, falling back to application/octet-stream.
func DetectContentType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

// IsImage reports whether data looks like an image.
func IsImage(data []byte) bool {
	return filetype.IsImage(data)
}

// Extension returns the sniffed extension of data, or fallback.
func Extension(data []byte, fallback string) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return strings.TrimPrefix(fallback, ".")
	}
	return kind.Extension
}
