package jobrunner

import (
	"context"
	"net/http"
	"strings"
)

// StorageApiClient reads the service index and verifies tokens using the Storage API.
type StorageApiClient struct {
	baseUrl string
	api     *apiClient
}

func NewStorageApiClient(httpClient *http.Client, baseUrl string, token string, runId string) *StorageApiClient {
	return &StorageApiClient{baseUrl: strings.TrimRight(baseUrl, "/"), api: newApiClient(httpClient, token, runId)}
}

// Services returns the service index of the stack.
func (s *StorageApiClient) Services(ctx context.Context) ([]Service, error) {
	var index struct {
		Services []Service `json:"services"`
	}
	if err := s.api.doJSON(ctx, http.MethodGet, s.baseUrl+"/v2/storage/?exclude=components", nil, &index); err != nil {
		return nil, err
	}
	return index.Services, nil
}

// VerifyToken returns details of the token owner.
func (s *StorageApiClient) VerifyToken(ctx context.Context) (*TokenInfo, error) {
	info := &TokenInfo{}
	if err := s.api.doJSON(ctx, http.MethodGet, s.baseUrl+"/v2/storage/tokens/verify", nil, info); err != nil {
		return nil, err
	}
	return info, nil
}
