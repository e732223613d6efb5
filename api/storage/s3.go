package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNotFound = errors.New("log not found")

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Bucket    string
}

// Client archives execution logs in an S3-compatible bucket.
type Client struct {
	mc     *minio.Client
	config Config
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = "execution-logs"
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &Client{mc: mc, config: cfg}, nil
}

func (c *Client) EnsureBucket(ctx context.Context) error {
	name := c.config.Bucket
	exists, err := c.mc.BucketExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", name, err)
	}
	if exists {
		return nil
	}
	region := c.config.Region
	if region == "" {
		region = "us-east-1"
	}
	if err := c.mc.MakeBucket(ctx, name, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	slog.Info("s3: created bucket", "bucket", name)
	return nil
}

func (c *Client) PutLog(ctx context.Context, key, text string) error {
	_, err := c.mc.PutObject(ctx, c.config.Bucket, key, strings.NewReader(text), int64(len(text)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("put log %s: %w", key, err)
	}
	return nil
}

func (c *Client) GetLog(ctx context.Context, key string) (string, error) {
	obj, err := c.mc.GetObject(ctx, c.config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get log %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("log %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("read log %s: %w", key, err)
	}
	return string(data), nil
}

func (c *Client) Healthy(ctx context.Context) error {
	_, err := c.mc.BucketExists(ctx, c.config.Bucket)
	return err
}

func (c *Client) Endpoint() string {
	return c.config.Endpoint
}
