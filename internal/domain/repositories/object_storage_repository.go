package repositories

import "context"

// ObjectLocation addresses a single object in a bucket.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// ObjectStorageRepository parses destinations and builds storage clients.
type ObjectStorageRepository interface {
	// ParseDestination splits a destination URL into bucket and key.
	// It returns false when the URL cannot be understood.
	ParseDestination(rawURL string) (ObjectLocation, bool)

	// Client returns a client for the given endpoint. An empty endpoint
	// selects the provider default.
	Client(ctx context.Context, endpoint string, pathStyle bool) (ObjectStorageClient, error)
}

// ObjectStorageClient uploads objects.
type ObjectStorageClient interface {
	Put(ctx context.Context, location ObjectLocation, body []byte, contentType string) error
}
