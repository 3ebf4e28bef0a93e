package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

const (
	destinationScheme = "s3"
	// DefaultObjectName is appended to destinations naming only a bucket or a prefix.
	DefaultObjectName = "renovate-report.json"
)

// ObjectStorageRepository talks to S3-compatible object storage.
type ObjectStorageRepository struct{}

// NewObjectStorageRepository creates a new ObjectStorageRepository.
func NewObjectStorageRepository() *ObjectStorageRepository {
	return &ObjectStorageRepository{}
}

// ParseDestination splits "s3://bucket/key" into its parts. A missing key
// or a trailing slash selects DefaultObjectName under that prefix.
func (it *ObjectStorageRepository) ParseDestination(rawURL string) (repositories.ObjectLocation, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !strings.EqualFold(parsed.Scheme, destinationScheme) || parsed.Host == "" {
		return repositories.ObjectLocation{}, false
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += DefaultObjectName
	}
	return repositories.ObjectLocation{Bucket: parsed.Host, Key: key}, true
}

// Client builds an S3 client from the default AWS credential chain.
func (it *ObjectStorageRepository) Client(
	ctx context.Context,
	endpoint string,
	pathStyle bool,
) (repositories.ObjectStorageClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})
	return &objectStorageClient{client: client}, nil
}

type objectStorageClient struct {
	client *awss3.Client
}

func (c *objectStorageClient) Put(
	ctx context.Context,
	location repositories.ObjectLocation,
	body []byte,
	contentType string,
) error {
	_, err := c.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(location.Bucket),
		Key:         aws.String(location.Key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
