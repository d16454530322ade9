package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadoscout/internal/models"
	"mercadoscout/pkg/apierr"
)

// fakeStore mimics the keyed set semantics of the document store
type fakeStore struct {
	favorites map[string][]models.FavoriteProduct
}

func newFakeStore(userIDs ...string) *fakeStore {
	f := &fakeStore{favorites: map[string][]models.FavoriteProduct{}}
	for _, id := range userIDs {
		f.favorites[id] = []models.FavoriteProduct{}
	}
	return f
}

func (f *fakeStore) AddFavorite(_ context.Context, userID string, fav models.FavoriteProduct) error {
	favs, ok := f.favorites[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	for _, existing := range favs {
		if existing.ID == fav.ID {
			return nil
		}
	}
	f.favorites[userID] = append(favs, fav)
	return nil
}

func (f *fakeStore) ListFavorites(_ context.Context, userID string) ([]models.FavoriteProduct, error) {
	favs, ok := f.favorites[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return favs, nil
}

func (f *fakeStore) RemoveFavorite(_ context.Context, userID, productID string) error {
	favs, ok := f.favorites[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	kept := favs[:0]
	for _, existing := range favs {
		if existing.ID != productID {
			kept = append(kept, existing)
		}
	}
	f.favorites[userID] = kept
	return nil
}

func validFavorite() models.FavoriteProduct {
	return models.FavoriteProduct{
		ID:       "ML-0123456789abcdef",
		Name:     "Laptop Lenovo",
		Price:    12499.50,
		Currency: "MXN",
		URL:      "https://articulo.mercadolibre.com.mx/MLM-111-laptop",
		Source:   "MercadoLibre",
	}
}

func TestAddIsIdempotent(t *testing.T) {
	svc := NewService(newFakeStore("u1"))

	require.NoError(t, svc.Add(context.Background(), "u1", validFavorite()))
	require.NoError(t, svc.Add(context.Background(), "u1", validFavorite()))

	favs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
	assert.Equal(t, "ML-0123456789abcdef", favs[0].ID)
	assert.False(t, favs[0].AddedAt.IsZero())
}

func TestAddIncompleteProduct(t *testing.T) {
	svc := NewService(newFakeStore("u1"))

	for _, fav := range []models.FavoriteProduct{
		{Name: "sin id", Price: 10, URL: "u"},
		{ID: "X", Price: 10, URL: "u"},
		{ID: "X", Name: "N", URL: "u"},
		{ID: "X", Name: "N", Price: 10},
		{ID: "X", Name: "N", Price: -1, URL: "u"},
	} {
		err := svc.Add(context.Background(), "u1", fav)
		require.Error(t, err)
		assert.Equal(t, apierr.KindIncompleteProduct, apierr.KindOf(err))
	}
}

func TestAddUserNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.Add(context.Background(), "missing", validFavorite())
	require.Error(t, err)
	assert.Equal(t, apierr.KindUserNotFound, apierr.KindOf(err))
}

func TestListEmpty(t *testing.T) {
	svc := NewService(newFakeStore("u1"))

	favs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}

func TestListUserNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.List(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apierr.KindUserNotFound, apierr.KindOf(err))
}

func TestRemoveNonMemberIsNoOp(t *testing.T) {
	store := newFakeStore("u1")
	svc := NewService(store)

	require.NoError(t, svc.Add(context.Background(), "u1", validFavorite()))
	require.NoError(t, svc.Remove(context.Background(), "u1", "ML-not-a-member"))

	favs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestRemove(t *testing.T) {
	svc := NewService(newFakeStore("u1"))

	require.NoError(t, svc.Add(context.Background(), "u1", validFavorite()))
	require.NoError(t, svc.Remove(context.Background(), "u1", "ML-0123456789abcdef"))

	favs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestRemoveMissingID(t *testing.T) {
	svc := NewService(newFakeStore("u1"))

	err := svc.Remove(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
}

func TestAddStampsAddedAt(t *testing.T) {
	svc := NewService(newFakeStore("u1"))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.NoError(t, svc.Add(context.Background(), "u1", validFavorite()))

	favs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, fixed, favs[0].AddedAt)
}
