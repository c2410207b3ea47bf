// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// minioObjectClient implements ObjectClient over an S3-compatible endpoint.
type minioObjectClient struct {
	mc *minio.Client
}

// NewMinio builds a Store backed by the S3-compatible endpoint in cfg.
// Missing endpoint or credentials yield ErrNotConfigured; the ingest and
// serve commands treat that as fatal.
func NewMinio(ctx context.Context, cfg types.StoreConfig, now types.NowFunc) (*Store, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	return New(ctx, &minioObjectClient{mc: mc}, cfg, now)
}

func (c *minioObjectClient) EnsureBucket(ctx context.Context, bucket string) error {
	err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	if err == nil {
		return nil
	}
	// Creation raced or the bucket predates us; either is fine.
	if exists, existsErr := c.mc.BucketExists(ctx, bucket); existsErr == nil && exists {
		return nil
	}
	return err
}

func (c *minioObjectClient) Put(ctx context.Context, bucket, key string, data []byte) error {
	_, err := c.mc.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (c *minioObjectClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (c *minioObjectClient) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range c.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
