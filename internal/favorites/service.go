package favorites

import (
	"context"
	"errors"
	"time"

	"mercadoscout/internal/models"
	"mercadoscout/pkg/apierr"
)

// Store is the slice of the user repository the favorites service needs. All
// mutations are single atomic set updates keyed by product id.
type Store interface {
	AddFavorite(ctx context.Context, userID string, fav models.FavoriteProduct) error
	ListFavorites(ctx context.Context, userID string) ([]models.FavoriteProduct, error)
	RemoveFavorite(ctx context.Context, userID, productID string) error
}

// Service manages a user's saved-product set
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a favorites service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Add stores a product in the user's favorite set. Re-adding an existing id is
// a no-op reported as success.
func (s *Service) Add(ctx context.Context, userID string, fav models.FavoriteProduct) error {
	if fav.ID == "" || fav.Name == "" || fav.URL == "" || fav.Price <= 0 {
		return apierr.New(apierr.KindIncompleteProduct, "favorite requires id, name, price and url")
	}

	fav.AddedAt = s.now()
	return mapStoreErr(s.store.AddFavorite(ctx, userID, fav))
}

// List returns the user's favorites, empty if none
func (s *Service) List(ctx context.Context, userID string) ([]models.FavoriteProduct, error) {
	favs, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if favs == nil {
		favs = []models.FavoriteProduct{}
	}
	return favs, nil
}

// Remove deletes the entry matching productID. Removing a non-member id is a
// no-op reported as success.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return apierr.New(apierr.KindValidation, "product id is required")
	}
	return mapStoreErr(s.store.RemoveFavorite(ctx, userID, productID))
}

func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrUserNotFound) {
		return apierr.New(apierr.KindUserNotFound, "user record not found")
	}
	return apierr.Wrap(apierr.KindInternal, "favorites update failed", err)
}
