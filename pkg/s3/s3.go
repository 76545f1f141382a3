package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"snapgram/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const keyPrefix = "posts/"

var ErrFileNotFound = errors.New("file not found")

// Client stores uploaded files in one bucket. Files are addressed by an id
// issued at upload time; the object key is derived from it.
type Client struct {
	s3Client   s3iface.S3API
	bucket     string
	previewURL string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := NewWithAPI(s3.New(sess), cfg.S3BucketName, cfg.PublicBaseURL)

	// Ensure bucket exists (for MinIO)
	if _, err := client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	}); err != nil {
		if _, err := client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.S3BucketName, err)
		}
	}

	return client, nil
}

// NewWithAPI builds a client over an existing S3 API implementation.
func NewWithAPI(api s3iface.S3API, bucket, publicBaseURL string) *Client {
	return &Client{
		s3Client:   api,
		bucket:     bucket,
		previewURL: strings.TrimSuffix(publicBaseURL, "/") + "/api/v1/files/",
	}
}

func (c *Client) UploadFile(ctx context.Context, fileID string, file io.ReadSeeker, contentType string) error {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectKey(fileID)),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// PreviewURL confirms the file is stored and returns the URL its preview is
// served from, constrained to width x height at the given JPEG quality.
func (c *Client) PreviewURL(ctx context.Context, fileID string, width, height, quality int) (string, error) {
	_, err := c.s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(fileID)),
	})
	if err != nil {
		if isNotFound(err) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("failed to stat file in S3: %w", err)
	}

	query := url.Values{}
	query.Set("width", strconv.Itoa(width))
	query.Set("height", strconv.Itoa(height))
	query.Set("quality", strconv.Itoa(quality))
	return c.previewURL + url.PathEscape(fileID) + "/preview?" + query.Encode(), nil
}

func (c *Client) OpenFile(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	out, err := c.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(fileID)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", fmt.Errorf("failed to read file from S3: %w", err)
	}
	return out.Body, aws.StringValue(out.ContentType), nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(fileID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func objectKey(fileID string) string {
	return keyPrefix + fileID
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
