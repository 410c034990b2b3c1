package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentFixture() (*ContentService, *servicetest.Events, *servicetest.Editorial, *servicetest.Feed) {
	events := &servicetest.Events{}
	editorial := &servicetest.Editorial{}
	feed := &servicetest.Feed{}
	svc := NewContentService(events, &servicetest.Gurus{}, &servicetest.Branches{}, editorial, feed)
	return svc, events, editorial, feed
}

func TestContent_EventsRange(t *testing.T) {
	svc, events, _, feed := newContentFixture()
	ctx := context.Background()

	require.NoError(t, svc.CreateEvent(ctx, &model.Event{Title: "Paryaya", Date: model.NewDate(2026, 1, 18)}))
	require.NoError(t, svc.CreateEvent(ctx, &model.Event{Title: "Deepotsava", Date: model.NewDate(2026, 11, 8)}))
	assert.Equal(t, []string{EventEventCreated, EventEventCreated}, feed.Kinds)

	all, err := svc.Events(ctx, model.Date{}, model.Date{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	nov, err := svc.Events(ctx, model.NewDate(2026, 11, 1), model.NewDate(2026, 11, 30))
	require.NoError(t, err)
	require.Len(t, nov, 1)
	assert.Equal(t, "Deepotsava", nov[0].Title)
	assert.Equal(t, model.NewDate(2026, 11, 1), events.Bounds[0])

	_, err = svc.Events(ctx, model.NewDate(2026, 11, 1), model.Date{})
	assert.ErrorIs(t, err, ErrInvalidContent)
	_, err = svc.Events(ctx, model.NewDate(2026, 11, 30), model.NewDate(2026, 11, 1))
	assert.ErrorIs(t, err, ErrInvalidContent)

	assert.ErrorIs(t, svc.CreateEvent(ctx, &model.Event{Title: "No date"}), ErrInvalidContent)
	require.NoError(t, svc.DeleteEvent(ctx, 1))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, 99), ErrNotFound)
}

func TestContent_FlashUpdatesUseToday(t *testing.T) {
	svc, _, editorial, feed := newContentFixture()
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, svc.CreateFlash(ctx, &model.FlashUpdate{Message: "Ends today", ExpiryDate: model.NewDate(2026, 10, 15)}))
	require.NoError(t, svc.CreateFlash(ctx, &model.FlashUpdate{Message: "Tomorrow", ExpiryDate: model.NewDate(2026, 10, 16)}))
	assert.ErrorIs(t, svc.CreateFlash(ctx, &model.FlashUpdate{Message: "no expiry"}), ErrInvalidContent)
	assert.Equal(t, []string{EventFlashUpdate, EventFlashUpdate}, feed.Kinds)

	active, err := svc.FlashUpdates(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Tomorrow", active[0].Message)
	assert.Equal(t, model.NewDate(2026, 10, 15), editorial.Today)
}

func TestContent_Albums(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	ctx := context.Background()

	album := &model.Album{Title: "Paryaya 2026"}
	require.NoError(t, svc.CreateAlbum(ctx, album))
	require.NoError(t, svc.AddMedia(ctx, &model.MediaItem{AlbumID: album.ID, Type: model.MediaPhoto, URL: "/api/files/a.jpg"}))

	assert.ErrorIs(t, svc.AddMedia(ctx, &model.MediaItem{AlbumID: album.ID, Type: "GIF", URL: "x"}), ErrInvalidContent)
	assert.ErrorIs(t, svc.AddMedia(ctx, &model.MediaItem{AlbumID: 99, Type: model.MediaVideo, URL: "x"}), ErrNotFound)

	media, err := svc.AlbumMedia(ctx, album.ID)
	require.NoError(t, err)
	assert.Len(t, media, 1)

	_, err = svc.AlbumMedia(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContent_BranchesAndGurus(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	ctx := context.Background()

	b := &model.Branch{Name: "Sode Mutt, Udupi", City: "Udupi"}
	require.NoError(t, svc.CreateBranch(ctx, b))
	_, err := uuid.Parse(b.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.CreateBranch(ctx, &model.Branch{}), ErrInvalidContent)
	require.NoError(t, svc.DeleteBranch(ctx, b.ID))
	assert.ErrorIs(t, svc.DeleteBranch(ctx, b.ID), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBranch(ctx, "not-a-uuid"), ErrNotFound)

	assert.ErrorIs(t, svc.CreateGuru(ctx, &model.Guru{}), ErrInvalidContent)
	require.NoError(t, svc.CreateGuru(ctx, &model.Guru{Name: "Sri Vadirajaru", OrderIndex: 20}))
	gurus, err := svc.Gurus(ctx)
	require.NoError(t, err)
	assert.Len(t, gurus, 1)
	assert.ErrorIs(t, svc.DeleteGuru(ctx, 5), ErrNotFound)

	require.NoError(t, svc.CreateTiming(ctx, &model.Timing{Location: "Sode"}))
	assert.ErrorIs(t, svc.CreateTiming(ctx, &model.Timing{}), ErrInvalidContent)
}

func TestContent_UpdateEvent(t *testing.T) {
	svc, events, _, _ := newContentFixture()
	ctx := context.Background()

	e := &model.Event{Title: "Paryaya", Date: model.NewDate(2026, 1, 18)}
	require.NoError(t, svc.CreateEvent(ctx, e))
	require.NoError(t, events.MarkNotified(ctx, e.ID))

	same := &model.Event{Title: "Paryaya Mahotsava", Date: model.NewDate(2026, 1, 18), Tithi: "Makara Sankranti"}
	require.NoError(t, svc.UpdateEvent(ctx, e.ID, same))
	assert.Equal(t, e.ID, same.ID)
	assert.True(t, same.NotificationSent)

	moved := &model.Event{Title: "Paryaya Mahotsava", Date: model.NewDate(2026, 1, 19)}
	require.NoError(t, svc.UpdateEvent(ctx, e.ID, moved))
	assert.False(t, moved.NotificationSent)

	all, err := svc.Events(ctx, model.Date{}, model.Date{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Paryaya Mahotsava", all[0].Title)

	assert.ErrorIs(t, svc.UpdateEvent(ctx, 99, &model.Event{Title: "x", Date: model.NewDate(2026, 1, 1)}), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateEvent(ctx, e.ID, &model.Event{Title: "no date"}), ErrInvalidContent)
}

func TestContent_UpdateGuruAndBranch(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	ctx := context.Background()

	g := &model.Guru{Name: "Sri Vadirajaru", OrderIndex: 20}
	require.NoError(t, svc.CreateGuru(ctx, g))
	require.NoError(t, svc.UpdateGuru(ctx, g.ID, &model.Guru{Name: "Sri Vadiraja Theertharu", OrderIndex: 20}))
	gurus, err := svc.Gurus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sri Vadiraja Theertharu", gurus[0].Name)
	assert.ErrorIs(t, svc.UpdateGuru(ctx, 77, &model.Guru{Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateGuru(ctx, g.ID, &model.Guru{}), ErrInvalidContent)

	b := &model.Branch{Name: "Sode Mutt", City: "Udupi"}
	require.NoError(t, svc.CreateBranch(ctx, b))
	require.NoError(t, svc.UpdateBranch(ctx, b.ID, &model.Branch{Name: "Sode Mutt", City: "Sonda"}))
	branches, err := svc.Branches(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sonda", branches[0].City)
	assert.Equal(t, b.ID, branches[0].ID)
	assert.ErrorIs(t, svc.UpdateBranch(ctx, "not-a-uuid", &model.Branch{Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateBranch(ctx, uuid.NewString(), &model.Branch{Name: "x"}), ErrNotFound)
}

func TestContent_FlashAndTimingEdits(t *testing.T) {
	svc, _, _, feed := newContentFixture()
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	f := &model.FlashUpdate{Message: "Laksha Deepotsava tonight", ExpiryDate: model.NewDate(2026, 10, 20)}
	require.NoError(t, svc.CreateFlash(ctx, f))
	require.NoError(t, svc.UpdateFlash(ctx, f.ID, &model.FlashUpdate{Message: f.Message, ExpiryDate: f.ExpiryDate, IsActive: false}))
	assert.Equal(t, []string{EventFlashUpdate, EventFlashUpdate}, feed.Kinds)

	active, err := svc.FlashUpdates(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.ErrorIs(t, svc.UpdateFlash(ctx, 404, &model.FlashUpdate{Message: "x", ExpiryDate: f.ExpiryDate}), ErrNotFound)
	require.NoError(t, svc.DeleteFlash(ctx, f.ID))
	assert.ErrorIs(t, svc.DeleteFlash(ctx, f.ID), ErrNotFound)

	tm := &model.Timing{Location: "Sode", DarshanTime: "06:00-12:00"}
	require.NoError(t, svc.CreateTiming(ctx, tm))
	require.NoError(t, svc.UpdateTiming(ctx, tm.ID, &model.Timing{Location: "Sode", DarshanTime: "06:00-13:00"}))
	visible, err := svc.Timings(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)
	all, err := svc.AllTimings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "06:00-13:00", all[0].DarshanTime)
	assert.ErrorIs(t, svc.UpdateTiming(ctx, tm.ID, &model.Timing{}), ErrInvalidContent)
}

func TestContent_AlbumEdits(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	ctx := context.Background()

	album := &model.Album{Title: "Paryaya 2026"}
	require.NoError(t, svc.CreateAlbum(ctx, album))
	item := &model.MediaItem{AlbumID: album.ID, Type: model.MediaPhoto, URL: "/api/files/a.jpg"}
	require.NoError(t, svc.AddMedia(ctx, item))

	require.NoError(t, svc.UpdateAlbum(ctx, album.ID, &model.Album{Title: "Paryaya Mahotsava 2026", CoverImage: "/api/files/a.jpg"}))
	albums, err := svc.Albums(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Paryaya Mahotsava 2026", albums[0].Title)
	assert.ErrorIs(t, svc.UpdateAlbum(ctx, album.ID, &model.Album{}), ErrInvalidContent)

	require.NoError(t, svc.DeleteMedia(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteMedia(ctx, item.ID), ErrNotFound)

	require.NoError(t, svc.AddMedia(ctx, &model.MediaItem{AlbumID: album.ID, Type: model.MediaVideo, URL: "https://youtu.be/x"}))
	require.NoError(t, svc.DeleteAlbum(ctx, album.ID))
	_, err = svc.AlbumMedia(ctx, album.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteAlbum(ctx, album.ID), ErrNotFound)
}

type stubSearch[T any] struct {
	items []T
	err   error
	query string
	limit int
}

func (s *stubSearch[T]) Search(_ context.Context, query string, limit int) ([]T, error) {
	s.query, s.limit = query, limit
	return s.items, s.err
}

func TestSearch(t *testing.T) {
	gurus := &stubSearch[model.Guru]{items: []model.Guru{{Name: "Sri Vadirajaru"}}}
	events := &stubSearch[model.Event]{}
	branches := &stubSearch[model.Branch]{}
	svc := NewSearchService(gurus, events, branches)

	res, err := svc.Search(context.Background(), "  vadi ")
	require.NoError(t, err)
	assert.Len(t, res.Gurus, 1)
	assert.NotNil(t, res.Events)
	assert.NotNil(t, res.Branches)
	assert.Equal(t, "vadi", gurus.query)
	assert.Equal(t, searchLimit, branches.limit)

	_, err = svc.Search(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	boom := errors.New("db down")
	events.err = boom
	_, err = svc.Search(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
