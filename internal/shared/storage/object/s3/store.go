package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"skincare-backend/internal/shared/storage/object"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the S3-backed image store.
type Options struct {
	Region    string
	Bucket    string
	Prefix    string
	KMSKeyID  string
	PublicURL string
}

// Store implements ImageStore using Amazon S3.
type Store struct {
	client    putObjectAPI
	bucket    string
	region    string
	prefix    string
	kmsKeyID  string
	publicURL string
}

// New creates a new S3-backed image store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newWithClient(s3.NewFromConfig(cfg), cfg.Region, opts), nil
}

func newWithClient(client putObjectAPI, region string, opts Options) *Store {
	if region == "" {
		region = opts.Region
	}
	return &Store{
		client:    client,
		bucket:    opts.Bucket,
		region:    region,
		prefix:    normalizePrefix(opts.Prefix),
		kmsKeyID:  strings.TrimSpace(opts.KMSKeyID),
		publicURL: strings.TrimRight(strings.TrimSpace(opts.PublicURL), "/"),
	}
}

// Upload puts the reader contents to S3 under the caller's namespace.
func (s *Store) Upload(ctx context.Context, callerID string, fileName string, r io.Reader) (object.Object, error) {
	key, err := object.NewKey(callerID, fileName)
	if err != nil {
		return object.Object{}, err
	}

	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	objectKey := applyPrefix(s.prefix, key)

	mimeType, body, err := object.Sniff(r)
	if err != nil {
		return object.Object{}, err
	}
	counter := &object.CountingReader{R: body}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        counter,
		ContentType: aws.String(mimeType),
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	} else {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return object.Object{}, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	return object.Object{
		Key:       objectKey,
		URL:       s.urlFor(objectKey),
		SizeBytes: counter.N,
		MimeType:  mimeType,
	}, nil
}

// urlFor prefers the configured public base (CDN); otherwise it builds the
// virtual-hosted-style bucket URL.
func (s *Store) urlFor(objectKey string) string {
	escaped := object.EscapeKey(objectKey)
	if s.publicURL != "" {
		return s.publicURL + "/" + escaped
	}
	if s.region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.ImageStore = (*Store)(nil)
