package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDAO(t *testing.T) {
	db := newTestDB(t)
	d := NewCategoryDAO(db)
	ctx := context.Background()

	owner := mustUser(t, db, "owner")
	base := time.Now().UTC().Truncate(time.Second)

	music, err := d.Insert(ctx, Category{Name: "Music", CreatedByID: &owner.ID, CreatedAt: base})
	require.NoError(t, err)
	_, err = d.Insert(ctx, Category{Name: "Tech", CreatedByID: &owner.ID, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = d.Insert(ctx, Category{Name: "Art music", CreatedAt: base.Add(2 * time.Minute)})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Category{Name: "Music"})
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	list, count, err := d.List(ctx, "", "created_at DESC", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, list, 3)
	assert.Equal(t, "Art music", list[0].Name)

	list, count, err = d.List(ctx, "MUSIC", "name ASC", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, list, 2)
	assert.Equal(t, "Art music", list[0].Name)
	assert.Equal(t, "Music", list[1].Name)

	music.Description = "Concerts"
	updated, err := d.Update(ctx, music)
	require.NoError(t, err)
	assert.Equal(t, "Concerts", updated.Description)

	music.Name = "Tech"
	_, err = d.Update(ctx, music)
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	// Deleting the creator keeps the category but forgets who made it.
	require.NoError(t, db.Delete(&User{}, owner.ID).Error)
	orphan, err := d.FindByID(ctx, music.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CreatedByID)

	require.NoError(t, d.Delete(ctx, music.ID))
	_, err = d.FindByID(ctx, music.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
