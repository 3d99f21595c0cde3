// Package s3 wraps the MinIO client for the quarantine and canonical
// storage areas.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/magicfolder/mfvault/pkg/configs"
	nlog "github.com/magicfolder/mfvault/pkg/log"
)

// Client wraps the MinIO client bound to the configured bucket.
type Client struct {
	*minio.Client

	bucket string
}

// New initializes the MinIO client and ensures the bucket exists.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3

	endpoint := cfg.Endpoint
	// Accept full scheme endpoints (http:// or https://).
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("mfvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.Bucket}, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// PresignPut issues a presigned PUT URL for the given key.
func (c *Client) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := c.PresignedPutObject(ctx, c.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}

	return u.String(), nil
}

// PresignGet issues a presigned GET URL for the given key.
func (c *Client) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := c.PresignedGetObject(ctx, c.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}

	return u.String(), nil
}

// Copy performs a server-side copy between keys within the bucket.
func (c *Client) Copy(ctx context.Context, srcKey, dstKey string) error {
	src := minio.CopySrcOptions{Bucket: c.bucket, Object: srcKey}
	dst := minio.CopyDestOptions{Bucket: c.bucket, Object: dstKey}

	if _, err := c.CopyObject(ctx, dst, src); err != nil {
		return fmt.Errorf("copy object %s to %s: %w", srcKey, dstKey, err)
	}

	return nil
}

// Get opens the object at key for reading and reports its size.
func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := c.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("get object %s: %w", key, err)
	}

	st, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, fmt.Errorf("stat object %s: %w", key, err)
	}

	return obj, st.Size, nil
}

// Remove deletes the object at key.
func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

// HealthCheck verifies connectivity by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close closes the S3 client connection (no-op, interface compatibility).
func (c *Client) Close() error {
	return nil
}
