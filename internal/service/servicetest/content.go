package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

// Events is an in-memory EventStore. Bounds records the last ListBetween range.
type Events struct {
	mu     sync.Mutex
	seq    int64
	rows   []model.Event
	Bounds [2]model.Date
}

func (f *Events) Create(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	e.ID = f.seq
	f.rows = append(f.rows, *e)
	return nil
}

func (f *Events) Update(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == e.ID {
			e.NotificationSent = f.rows[i].NotificationSent && f.rows[i].Date.Equal(e.Date.Time)
			f.rows[i] = *e
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Events) MarkNotified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].NotificationSent = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Events) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Events) ListAll(context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Event(nil), f.rows...), nil
}

func (f *Events) ListBetween(_ context.Context, from, to model.Date) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Bounds = [2]model.Date{from, to}
	var out []model.Event
	for _, e := range f.rows {
		if !e.Date.Before(from) && !to.Before(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

type Gurus struct {
	mu   sync.Mutex
	seq  int64
	rows []model.Guru
}

func (f *Gurus) Create(_ context.Context, g *model.Guru) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	g.ID = f.seq
	f.rows = append(f.rows, *g)
	return nil
}

func (f *Gurus) Update(_ context.Context, g *model.Guru) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == g.ID {
			f.rows[i] = *g
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Gurus) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Gurus) List(context.Context) ([]model.Guru, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]model.Guru(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

type Branches struct {
	mu   sync.Mutex
	rows []model.Branch
}

func (f *Branches) Create(_ context.Context, b *model.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, *b)
	return nil
}

func (f *Branches) Update(_ context.Context, b *model.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == b.ID {
			f.rows[i] = *b
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Branches) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Branches) List(context.Context) ([]model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Branch(nil), f.rows...), nil
}

// Editorial is an in-memory EditorialStore. Today records the date passed to ListActiveFlash.
type Editorial struct {
	mu      sync.Mutex
	seq     int64
	flash   []model.FlashUpdate
	timings []model.Timing
	albums  []model.Album
	media   []model.MediaItem
	Today   model.Date
}

func (f *Editorial) next() int64 {
	f.seq++
	return f.seq
}

func (f *Editorial) CreateFlash(_ context.Context, u *model.FlashUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.next()
	f.flash = append(f.flash, *u)
	return nil
}

func (f *Editorial) UpdateFlash(_ context.Context, u *model.FlashUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.flash {
		if f.flash[i].ID == u.ID {
			f.flash[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Editorial) DeleteFlash(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.flash {
		if f.flash[i].ID == id {
			f.flash = append(f.flash[:i], f.flash[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Editorial) ListActiveFlash(_ context.Context, today model.Date) ([]model.FlashUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Today = today
	var out []model.FlashUpdate
	for _, u := range f.flash {
		if u.IsActive && today.Before(u.ExpiryDate) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *Editorial) CreateTiming(_ context.Context, t *model.Timing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.next()
	f.timings = append(f.timings, *t)
	return nil
}

func (f *Editorial) UpdateTiming(_ context.Context, t *model.Timing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.timings {
		if f.timings[i].ID == t.ID {
			f.timings[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Editorial) ListActiveTimings(context.Context) ([]model.Timing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Timing
	for _, t := range f.timings {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *Editorial) ListAllTimings(context.Context) ([]model.Timing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Timing(nil), f.timings...), nil
}

func (f *Editorial) CreateAlbum(_ context.Context, a *model.Album) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.next()
	f.albums = append(f.albums, *a)
	return nil
}

func (f *Editorial) UpdateAlbum(_ context.Context, a *model.Album) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.albums {
		if f.albums[i].ID == a.ID {
			f.albums[i] = *a
			return nil
		}
	}
	return repository.ErrNotFound
}

// DeleteAlbum drops the album's media as well, like the table's cascade.
func (f *Editorial) DeleteAlbum(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.albums {
		if f.albums[i].ID == id {
			f.albums = append(f.albums[:i], f.albums[i+1:]...)
			kept := f.media[:0]
			for _, m := range f.media {
				if m.AlbumID != id {
					kept = append(kept, m)
				}
			}
			f.media = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Editorial) GetAlbum(_ context.Context, id int64) (*model.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.albums {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *Editorial) ListAlbums(context.Context) ([]model.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Album(nil), f.albums...), nil
}

func (f *Editorial) AddMedia(_ context.Context, m *model.MediaItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.next()
	f.media = append(f.media, *m)
	return nil
}

func (f *Editorial) DeleteMedia(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.media {
		if f.media[i].ID == id {
			f.media = append(f.media[:i], f.media[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Editorial) ListMedia(_ context.Context, albumID int64) ([]model.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.MediaItem
	for _, m := range f.media {
		if m.AlbumID == albumID {
			out = append(out, m)
		}
	}
	return out, nil
}
