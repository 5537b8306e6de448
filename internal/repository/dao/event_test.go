package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventIDs(events []Event) []uint {
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	return ids
}

func TestEventDAO_SearchVisibility(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	u1 := mustUser(t, db, "u1")
	u2 := mustUser(t, db, "u2")
	u3 := mustUser(t, db, "u3")

	a := mustEvent(t, db, Event{Title: "Tech Conf", Slug: "tech-conf", OrganizerID: u1.ID})
	b := mustEvent(t, db, Event{Title: "Private Party", Slug: "private-party", OrganizerID: u2.ID, IsPrivate: true})

	events, count, err := d.Search(ctx, 0, EventSearch{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []uint{a.ID}, eventIDs(events))

	events, count, err = d.Search(ctx, u2.ID, EventSearch{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, eventIDs(events))

	events, _, err = d.Search(ctx, u3.ID, EventSearch{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, eventIDs(events))

	// Private events stay hidden even when the text matches.
	events, _, err = d.Search(ctx, u3.ID, EventSearch{Query: "party"}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventDAO_SearchFilters(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	org := mustUser(t, db, "org")
	other := mustUser(t, db, "other")
	fan := mustUser(t, db, "fan")

	cat := Category{Name: "Music"}
	require.NoError(t, db.Create(&cat).Error)

	past := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)

	concert := mustEvent(t, db, Event{
		Title: "Jazz Night", Slug: "jazz-night", Description: "Live 100% jazz", OrganizerID: org.ID,
		CategoryID: &cat.ID, Location: "Paris", Venue: "New Morning", Price: 25,
		StartDate: futureStart, EndDate: futureStart.Add(3 * time.Hour),
	})
	draft := mustEvent(t, db, Event{
		Title: "Go Meetup", Slug: "go-meetup", OrganizerID: org.ID, Location: "Lyon", Venue: "Hall B",
		Price: 0, Status: "draft", StartDate: futureStart.Add(24 * time.Hour),
	})
	old := mustEvent(t, db, Event{
		Title: "Old Fair", Slug: "old-fair", OrganizerID: other.ID, Location: "Paris", Price: 10,
		StartDate: past, EndDate: past.Add(time.Hour),
	})

	tests := []struct {
		name   string
		search EventSearch
		user   uint
		want   []uint
	}{
		{"text in description", EventSearch{Query: "JAZZ"}, 0, []uint{concert.ID}},
		{"text in venue", EventSearch{Query: "hall"}, 0, []uint{draft.ID}},
		{"like wildcards are literal", EventSearch{Query: "100%"}, 0, []uint{concert.ID}},
		{"category", EventSearch{CategoryID: &cat.ID}, 0, []uint{concert.ID}},
		{"location", EventSearch{Location: "paris"}, 0, []uint{concert.ID, old.ID}},
		{"status", EventSearch{Status: "draft"}, 0, []uint{draft.ID}},
		{"price range", EventSearch{PriceMin: ptr(5.0), PriceMax: ptr(20.0)}, 0, []uint{old.ID}},
		{"date from", EventSearch{DateFrom: &futureStart}, 0, []uint{concert.ID, draft.ID}},
		{"date to", EventSearch{DateTo: ptr(past.Add(time.Hour))}, 0, []uint{old.ID}},
		{"available only", EventSearch{AvailableOnly: true}, 0, []uint{concert.ID}},
		{"organizer", EventSearch{OrganizerID: &other.ID}, 0, []uint{old.ID}},
		{"filters are ANDed", EventSearch{Location: "paris", Status: "published", PriceMax: ptr(15.0)}, 0, []uint{old.ID}},
		{"favorites ignored for anonymous", EventSearch{FavoritesOnly: true}, 0, []uint{concert.ID, draft.ID, old.ID}},
		{"favorites only", EventSearch{FavoritesOnly: true}, fan.ID, []uint{draft.ID}},
	}

	added, err := d.ToggleFavorite(ctx, draft.ID, fan.ID)
	require.NoError(t, err)
	require.True(t, added)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, count, err := d.Search(ctx, tt.user, tt.search, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), count)
			assert.ElementsMatch(t, tt.want, eventIDs(events))
		})
	}
}

func TestEventDAO_SearchOrderingAndPaging(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	org := mustUser(t, db, "org")
	first := mustEvent(t, db, Event{Title: "A", Slug: "a", OrganizerID: org.ID, Price: 30, StartDate: futureStart})
	second := mustEvent(t, db, Event{Title: "B", Slug: "b", OrganizerID: org.ID, Price: 10, StartDate: futureStart.Add(time.Hour)})
	third := mustEvent(t, db, Event{Title: "C", Slug: "c", OrganizerID: org.ID, Price: 20, StartDate: futureStart.Add(2 * time.Hour)})

	events, _, err := d.Search(ctx, 0, EventSearch{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, eventIDs(events), "default is newest start first")

	events, _, err = d.Search(ctx, 0, EventSearch{OrderField: "price"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID, third.ID, first.ID}, eventIDs(events))

	events, count, err := d.Search(ctx, 0, EventSearch{OrderField: "title", OrderDesc: true}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, []uint{second.ID}, eventIDs(events))
}

func TestEventDAO_SlugUniqueness(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	org := mustUser(t, db, "org")
	a := mustEvent(t, db, Event{Title: "Tech Conf", Slug: "tech-conf", OrganizerID: org.ID})
	b := mustEvent(t, db, Event{Title: "Other", Slug: "other", OrganizerID: org.ID})

	exists, err := d.SlugExists(ctx, "tech-conf", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.SlugExists(ctx, "tech-conf", a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	dup := a
	dup.ID = 0
	_, err = d.Insert(ctx, dup)
	assert.ErrorIs(t, err, ErrEventSlugExists)

	b.Slug = "tech-conf"
	_, err = d.Update(ctx, b)
	assert.ErrorIs(t, err, ErrEventSlugExists)

	stored, err := d.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "other", stored.Slug)

	bySlug, err := d.FindBySlug(ctx, "tech-conf")
	require.NoError(t, err)
	assert.Equal(t, a.ID, bySlug.ID)
}

func TestEventDAO_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	org := mustUser(t, db, "org")
	fan := mustUser(t, db, "fan")
	e := mustEvent(t, db, Event{Title: "T", Slug: "t", OrganizerID: org.ID})

	_, err := d.ToggleFavorite(ctx, e.ID, fan.ID)
	require.NoError(t, err)
	_, err = NewCommentDAO(db).Insert(ctx, Comment{EventID: e.ID, AuthorID: fan.ID, Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, e.ID))
	assert.ErrorIs(t, d.Delete(ctx, e.ID), ErrEventNotFound)

	var favorites, comments int64
	require.NoError(t, db.Model(&EventFavorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&Comment{}).Count(&comments).Error)
	assert.Zero(t, favorites)
	assert.Zero(t, comments)
}

func TestEventDAO_ToggleFavorite(t *testing.T) {
	db := newTestDB(t)
	d := NewEventDAO(db)
	ctx := context.Background()

	org := mustUser(t, db, "org")
	e := mustEvent(t, db, Event{Title: "T", Slug: "t", OrganizerID: org.ID})

	added, err := d.ToggleFavorite(ctx, e.ID, org.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.ToggleFavorite(ctx, e.ID, org.ID)
	require.NoError(t, err)
	assert.False(t, added)
}

func ptr[T any](v T) *T {
	return &v
}
