// Package archive keeps a copy of every CSV export in S3.
package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ManifestEntry is one line of the monthly export manifest.
type ManifestEntry struct {
	S3Key      string `json:"s3_key"`
	Bytes      int    `json:"bytes"`
	SHA256     string `json:"sha256"`
	ArchivedAt string `json:"archived_at"`
}

// Store archives CSV exports to S3.
type Store struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
}

// NewStore creates an archive Store. It returns nil when no bucket or client
// is configured.
func NewStore(s3Client S3API, bucket string, logger *logging.Logger) *Store {
	if bucket == "" || s3Client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{bucket: bucket, s3Client: s3Client, logger: logger}
}

// ArchiveExport writes one export under a dated key and records it in the
// monthly manifest. It returns the object key.
func (s *Store) ArchiveExport(ctx context.Context, data []byte, at time.Time) (string, error) {
	at = at.UTC()
	key := fmt.Sprintf("exports/v1/by-date/%d/%02d/%02d/contact_submissions-%s.csv",
		at.Year(), at.Month(), at.Day(), at.Format("150405.000"))

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("archive: s3 put %s: %w", key, err)
	}

	sum := sha256.Sum256(data)
	entry := ManifestEntry{
		S3Key:      key,
		Bytes:      len(data),
		SHA256:     hex.EncodeToString(sum[:]),
		ArchivedAt: at.Format(time.RFC3339),
	}
	if err := s.AppendManifest(ctx, entry, at); err != nil {
		// The export itself is stored; a missing manifest line is recoverable.
		s.logger.Warn("failed to append export manifest", "error", err, "s3_key", key)
	}
	return key, nil
}

// AppendManifest appends a JSONL line to the monthly manifest file.
// Uses read-modify-write since S3 doesn't support append.
func (s *Store) AppendManifest(ctx context.Context, entry ManifestEntry, at time.Time) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("archive: marshal manifest entry: %w", err)
	}

	at = at.UTC()
	manifestKey := fmt.Sprintf("exports/v1/manifests/%d-%02d.jsonl", at.Year(), at.Month())

	var existing []byte
	getResp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(manifestKey),
	})
	switch {
	case err == nil:
		existing, err = io.ReadAll(getResp.Body)
		getResp.Body.Close()
		if err != nil {
			return fmt.Errorf("archive: read manifest: %w", err)
		}
	case isNotFound(err):
		s.logger.Debug("manifest not found, creating new", "key", manifestKey)
	default:
		return fmt.Errorf("archive: s3 get manifest: %w", err)
	}

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.Write(existing)
		if existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	buf.Write(line)
	buf.WriteByte('\n')

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(manifestKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("archive: s3 put manifest: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound")
}
