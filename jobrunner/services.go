package jobrunner

import (
	"context"
	"strings"
	"sync"

	"github.com/relloyd/hptransform/hperrors"
)

// ServiceRegistry resolves service ids to base URLs.
// The index is fetched on first use and kept for the lifetime of the registry.
type ServiceRegistry struct {
	storage  StorageAPI
	mu       sync.Mutex
	services []Service
	loaded   bool
}

func NewServiceRegistry(storage StorageAPI) *ServiceRegistry {
	return &ServiceRegistry{storage: storage}
}

// URL returns the base URL of the first service with the given id.
func (r *ServiceRegistry) URL(ctx context.Context, serviceId string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		s, err := r.storage.Services(ctx)
		if err != nil {
			return "", hperrors.WrapApplicationError(err, "unable to fetch the service index: %v", err)
		}
		r.services = s
		r.loaded = true
	}
	for _, s := range r.services {
		if s.ID == serviceId {
			return strings.TrimRight(s.URL, "/"), nil
		}
	}
	return "", hperrors.NewApplicationError("%s service not found", serviceId)
}
