//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

// ClientCall records a single invocation of Client.
type ClientCall struct {
	Endpoint  string
	PathStyle bool
}

// SpyObjectStorageRepository implements repositories.ObjectStorageRepository as a configurable spy.
type SpyObjectStorageRepository struct {
	// --- ParseDestination ---
	Location     repositories.ObjectLocation
	ParseOK      bool
	ParsedInputs []string

	// --- Client ---
	StorageClient *SpyObjectStorageClient
	ClientErr     error
	ClientCalls   []ClientCall
}

var _ repositories.ObjectStorageRepository = (*SpyObjectStorageRepository)(nil)

func (s *SpyObjectStorageRepository) ParseDestination(rawURL string) (repositories.ObjectLocation, bool) {
	s.ParsedInputs = append(s.ParsedInputs, rawURL)
	return s.Location, s.ParseOK
}

func (s *SpyObjectStorageRepository) Client(
	_ context.Context,
	endpoint string,
	pathStyle bool,
) (repositories.ObjectStorageClient, error) {
	s.ClientCalls = append(s.ClientCalls, ClientCall{Endpoint: endpoint, PathStyle: pathStyle})
	if s.ClientErr != nil {
		return nil, s.ClientErr
	}
	if s.StorageClient == nil {
		s.StorageClient = &SpyObjectStorageClient{}
	}
	return s.StorageClient, nil
}

// PutCall records a single upload.
type PutCall struct {
	Location    repositories.ObjectLocation
	Body        []byte
	ContentType string
}

// SpyObjectStorageClient implements repositories.ObjectStorageClient as a configurable spy.
type SpyObjectStorageClient struct {
	PutErr error
	Puts   []PutCall
}

var _ repositories.ObjectStorageClient = (*SpyObjectStorageClient)(nil)

func (s *SpyObjectStorageClient) Put(
	_ context.Context,
	location repositories.ObjectLocation,
	body []byte,
	contentType string,
) error {
	s.Puts = append(s.Puts, PutCall{Location: location, Body: body, ContentType: contentType})
	return s.PutErr
}
