package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehub/internal/api/models"
)

type fakeListRepo struct {
	lists  map[int64]*models.AnimeList
	nextID int64
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[int64]*models.AnimeList), nextID: 1}
}

func (r *fakeListRepo) Create(ctx context.Context, list *models.AnimeList) error {
	list.ID = r.nextID
	r.nextID++
	copied := *list
	r.lists[list.ID] = &copied
	return nil
}

func (r *fakeListRepo) FindByID(ctx context.Context, id int64) (*models.AnimeList, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, nil
	}
	copied := *list
	copied.Items = append([]models.ListItem(nil), list.Items...)
	return &copied, nil
}

func (r *fakeListRepo) ListByUser(ctx context.Context, userID string) ([]models.AnimeList, error) {
	var out []models.AnimeList
	for _, list := range r.lists {
		if list.UserID == userID {
			out = append(out, *list)
		}
	}
	return out, nil
}

func (r *fakeListRepo) AddItem(ctx context.Context, item *models.ListItem) error {
	list := r.lists[item.ListID]
	list.Items = append(list.Items, *item)
	return nil
}

func (r *fakeListRepo) RemoveItem(ctx context.Context, listID int64, animeID int) error {
	list, ok := r.lists[listID]
	if !ok {
		return nil
	}
	kept := list.Items[:0]
	for _, item := range list.Items {
		if item.AnimeID != animeID {
			kept = append(kept, item)
		}
	}
	list.Items = kept
	return nil
}

func TestAddItemTwiceIsConflict(t *testing.T) {
	svc := NewListService(newFakeListRepo())
	ctx := context.Background()

	list, err := svc.Create(ctx, "user-1", "favorites", "")
	require.NoError(t, err)

	anime := AnimeSnapshot{AnimeID: 101, Title: "Cowboy Bebop"}
	_, err = svc.AddItem(ctx, "user-1", list.ID, anime)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "user-1", list.ID, anime)
	assert.ErrorIs(t, err, ErrAlreadyInList)

	got, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 1)
}

func TestAddItemOwnershipChecks(t *testing.T) {
	svc := NewListService(newFakeListRepo())
	ctx := context.Background()

	list, err := svc.Create(ctx, "user-1", "favorites", "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "user-2", list.ID, AnimeSnapshot{AnimeID: 101})
	assert.ErrorIs(t, err, ErrNotListOwner)

	_, err = svc.AddItem(ctx, "user-1", 999, AnimeSnapshot{AnimeID: 101})
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestRemoveListItemIsIdempotent(t *testing.T) {
	svc := NewListService(newFakeListRepo())
	ctx := context.Background()

	list, err := svc.Create(ctx, "user-1", "favorites", "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "user-1", list.ID, AnimeSnapshot{AnimeID: 101})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, "user-1", list.ID, 101))
	require.NoError(t, svc.RemoveItem(ctx, "user-1", list.ID, 101))

	got, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Items)
}
