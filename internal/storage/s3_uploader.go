package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadError reports a blob store write failure. It is distinct from render
// failures so a caller knows "the document was built but not saved".
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// BlobStore is the external storage collaborator: write bytes under a key,
// then derive a publicly dereferenceable URL for that key.
type BlobStore interface {
	Upload(key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// S3Uploader stores rendered bills in S3-compatible storage. It targets the
// Supabase storage S3 endpoint but works with any path-style S3 bucket.
type S3Uploader struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
}

// Config holds configuration for the S3 uploader.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// NewS3Uploader creates a new S3 uploader.
func NewS3Uploader(config *Config) (*S3Uploader, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint + "/storage/v1/s3"),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(false),
	}))

	return &S3Uploader{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
	}, nil
}

// Upload writes data under the given key. An existing object under the same
// key is overwritten, which is what re-publishing a bill wants.
func (u *S3Uploader) Upload(key string, data []byte, contentType string) error {
	_, err := u.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return &UploadError{Key: key, Err: err}
	}
	return nil
}

// PublicURL derives the public object URL for a key.
// Format: https://{project-ref}.storage.supabase.co/storage/v1/object/public/{bucket}/{key}
func (u *S3Uploader) PublicURL(key string) string {
	baseURL := strings.Replace(u.endpoint, "/storage/v1/s3", "", 1)
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", baseURL, u.bucket, key)
}
