// Package snapshot exports copies of the ledger tables to S3-compatible
// object storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/amail/internal/logging"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/metrics"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"github.com/google/uuid"
)

// Source produces a consistent copy of the ledger.
type Source interface {
	Export(ctx context.Context) (*models.Snapshot, error)
}

// ObjectPutter is the part of *s3.Client the exporter needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// NewS3Client builds a client for the configured endpoint with static
// credentials. Path-style addressing keeps MinIO happy.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// StorageKey names a snapshot object taken at t.
func StorageKey(t time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%v.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

type Exporter struct {
	source  Source
	putter  ObjectPutter
	bucket  string
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewExporter(source Source, putter ObjectPutter, bucket string, met *metrics.Metrics, logger logging.Logger) *Exporter {
	return &Exporter{
		source:  source,
		putter:  putter,
		bucket:  bucket,
		metrics: met,
		logger:  logger.With("module", "snapshot"),
	}
}

// Export uploads one snapshot and returns its object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	snap, err := e.source.Export(ctx)
	if err != nil {
		e.metrics.ObserveSnapshot(metrics.ResultError)
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		e.metrics.ObserveSnapshot(metrics.ResultError)
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	key := StorageKey(snap.TakenAt)
	_, err = e.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		e.metrics.ObserveSnapshot(metrics.ResultError)
		return "", fmt.Errorf("put snapshot %s: %w", key, err)
	}

	e.metrics.ObserveSnapshot(metrics.ResultOK)
	e.logger.Info(ctx, "snapshot exported", "key", key, "mails", len(snap.Mails))
	return key, nil
}

// Run exports a snapshot every interval until ctx is done. Failures are
// logged and the loop goes on.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Export(ctx); err != nil {
				e.logger.Error(ctx, "snapshot failed", "error", err)
			}
		}
	}
}
