// Package cdn pushes post images to an S3-compatible object store and
// hands back the public URL each one will be served from.
package cdn

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Config struct {
	// S3-compatible endpoint, e.g. a MinIO or CDN origin URL.  Empty
	// means plain AWS S3.
	Endpoint string

	Region string
	Bucket string

	AccessKey string
	SecretKey string

	// Public base under which uploaded objects are served.  Empty means
	// derive from Endpoint/Bucket.
	PublicBaseURL string

	// Key prefix for all uploads, e.g. "blog-posts".
	Folder string
}

type Uploader struct {
	client *s3.Client
	config Config
}

func New(ctx context.Context, config Config) (*Uploader, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("cdn: please configure a bucket")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.AccessKey,
			config.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("cdn: couldn't load object store config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{client: client, config: config}, nil
}

// Upload pushes one local file to the object store under the suggested
// key and returns the public URL.  Re-uploading the same key overwrites,
// which is what we want: a changed asset replaces its old representation.
func (u *Uploader) Upload(ctx context.Context, localPath string, key string) (string, error) {
	if key == "" {
		// no deterministic name to offer; fall back to a random one
		key = path.Join(u.config.Folder, uuid.NewString()+filepath.Ext(localPath))
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("cdn: couldn't open %s: %w", localPath, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.config.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("cdn: couldn't upload %s: %w", localPath, err)
	}

	return u.publicURL(key), nil
}

// PostKey builds the deterministic object key for one image of one post:
// <folder>/<slug>/<filename>.  Stable names mean a re-upload of changed
// bytes lands on the same key instead of littering the bucket.
func (u *Uploader) PostKey(slug string, ref string) string {
	return path.Join(u.config.Folder, slug, path.Base(filepath.ToSlash(ref)))
}

func (u *Uploader) publicURL(key string) string {
	base := u.config.PublicBaseURL
	if base == "" {
		if u.config.Endpoint != "" {
			base = strings.TrimSuffix(u.config.Endpoint, "/") + "/" + u.config.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", u.config.Bucket, u.config.Region)
		}
	}

	// keys are path.Joined from clean parts, but be safe about escaping
	escaped := url.PathEscape(key)
	escaped = strings.ReplaceAll(escaped, "%2F", "/")

	return strings.TrimSuffix(base, "/") + "/" + escaped
}
