package services

import (
	"sort"

	"payhook_backend/internal/models"
	"payhook_backend/internal/repositories"
	"payhook_backend/pkg/apperrors"
)

// StoreResolver maps an application name to its isolated account store.
//
// The table is built once at startup from the known applications and their
// database connections, then injected into the webhook service. It is
// deliberately static: metadata from the wire can never redirect a lookup
// into a store that was not enumerated here.
type StoreResolver struct {
	stores map[models.AppName]repositories.AccountRepository
}

func NewStoreResolver(stores map[models.AppName]repositories.AccountRepository) *StoreResolver {
	return &StoreResolver{stores: stores}
}

// Resolve returns the store owned by the given application.
func (r *StoreResolver) Resolve(app models.AppName) (repositories.AccountRepository, error) {
	repo, ok := r.stores[app]
	if !ok {
		return nil, apperrors.ErrUnknownApp.WithDetails(map[string]string{"app": string(app)})
	}
	return repo, nil
}

// Applications lists the registered application names, sorted for stable
// startup logging.
func (r *StoreResolver) Applications() []string {
	names := make([]string, 0, len(r.stores))
	for app := range r.stores {
		names = append(names, string(app))
	}
	sort.Strings(names)
	return names
}
