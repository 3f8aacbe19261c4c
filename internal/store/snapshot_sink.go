// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
)

// ErrNoSnapshotSink is returned when snapshots are enabled but neither a
// directory nor a bucket is configured.
var ErrNoSnapshotSink = errors.New("no snapshot sink configured")

// NewSnapshotSink picks the S3 sink when a bucket is configured and the
// local directory sink otherwise.
func NewSnapshotSink(ctx context.Context, cfg config.Snapshot, log *logger.Logger) (SnapshotSink, error) {
	switch {
	case cfg.S3.Bucket != "":
		return NewS3SnapshotSink(ctx, cfg.S3, log)
	case cfg.Dir != "":
		return NewFileSnapshotSink(cfg.Dir, log), nil
	default:
		return nil, ErrNoSnapshotSink
	}
}

type fileSnapshotSink struct {
	dir    string
	logger *logger.Logger
}

// NewFileSnapshotSink writes snapshots as files under dir.
func NewFileSnapshotSink(dir string, log *logger.Logger) SnapshotSink {
	return &fileSnapshotSink{dir: dir, logger: log}
}

func (s *fileSnapshotSink) Name() string {
	return "file:" + s.dir
}

func (s *fileSnapshotSink) Put(_ context.Context, name string, data []byte) error {
	path := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating snapshot dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error moving snapshot into place: %w", err)
	}

	s.logger.Debug().Str("func", "*fileSnapshotSink.Put").Str("path", path).Int("bytes", len(data)).Msg("snapshot written")
	return nil
}

// s3PutAPI is the subset of *s3.Client used by the sink.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3SnapshotSink struct {
	client s3PutAPI
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3SnapshotSink uploads snapshots to an S3 or S3-compatible bucket.
// Static credentials are used when both keys are set, otherwise the default
// AWS credential chain applies.
func NewS3SnapshotSink(ctx context.Context, cfg config.S3, log *logger.Logger) (SnapshotSink, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		// minio and friends
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3SnapshotSink(s3.NewFromConfig(awsCfg, s3Opts...), cfg.Bucket, cfg.Prefix, log), nil
}

func newS3SnapshotSink(client s3PutAPI, bucket, prefix string, log *logger.Logger) *s3SnapshotSink {
	return &s3SnapshotSink{client: client, bucket: bucket, prefix: prefix, logger: log}
}

func (s *s3SnapshotSink) Name() string {
	return "s3://" + s.bucket + "/" + s.prefix
}

func (s *s3SnapshotSink) Put(ctx context.Context, name string, data []byte) error {
	key := s.prefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/x-snappy-framed"),
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*s3SnapshotSink.Put").Str("key", key).Msg("S3 put object failed")
		return fmt.Errorf("S3 put object failed: %w", err)
	}

	s.logger.Debug().Str("func", "*s3SnapshotSink.Put").Str("key", key).Int("bytes", len(data)).Msg("snapshot uploaded")
	return nil
}
