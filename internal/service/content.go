package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

const (
	EventFlashUpdate  = "flash_update"
	EventEventCreated = "event_created"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidContent = errors.New("invalid content")
)

type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]model.Event, error)
	ListBetween(ctx context.Context, from, to model.Date) ([]model.Event, error)
}

type GuruStore interface {
	Create(ctx context.Context, g *model.Guru) error
	Update(ctx context.Context, g *model.Guru) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Guru, error)
}

type BranchStore interface {
	Create(ctx context.Context, b *model.Branch) error
	Update(ctx context.Context, b *model.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Branch, error)
}

type EditorialStore interface {
	CreateFlash(ctx context.Context, f *model.FlashUpdate) error
	UpdateFlash(ctx context.Context, f *model.FlashUpdate) error
	DeleteFlash(ctx context.Context, id int64) error
	ListActiveFlash(ctx context.Context, today model.Date) ([]model.FlashUpdate, error)
	CreateTiming(ctx context.Context, t *model.Timing) error
	UpdateTiming(ctx context.Context, t *model.Timing) error
	ListActiveTimings(ctx context.Context) ([]model.Timing, error)
	ListAllTimings(ctx context.Context) ([]model.Timing, error)
	CreateAlbum(ctx context.Context, a *model.Album) error
	UpdateAlbum(ctx context.Context, a *model.Album) error
	DeleteAlbum(ctx context.Context, id int64) error
	GetAlbum(ctx context.Context, id int64) (*model.Album, error)
	ListAlbums(ctx context.Context) ([]model.Album, error)
	AddMedia(ctx context.Context, m *model.MediaItem) error
	DeleteMedia(ctx context.Context, id int64) error
	ListMedia(ctx context.Context, albumID int64) ([]model.MediaItem, error)
}

// ContentService serves the editorial content of the app and its admin edits.
type ContentService struct {
	events    EventStore
	gurus     GuruStore
	branches  BranchStore
	editorial EditorialStore
	feed      Broadcaster
	now       func() time.Time
}

func NewContentService(events EventStore, gurus GuruStore, branches BranchStore, editorial EditorialStore, feed Broadcaster) *ContentService {
	return &ContentService{events: events, gurus: gurus, branches: branches, editorial: editorial, feed: feed, now: time.Now}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidContent, msg)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) broadcast(kind string, payload any) {
	if s.feed != nil {
		s.feed.Broadcast(kind, payload)
	}
}

// Events lists all events, or only those within [from, to] when both are set.
func (s *ContentService) Events(ctx context.Context, from, to model.Date) ([]model.Event, error) {
	if from.IsZero() && to.IsZero() {
		return s.events.ListAll(ctx)
	}
	if from.IsZero() || to.IsZero() {
		return nil, invalid("both from and to are required")
	}
	if to.Before(from) {
		return nil, invalid("to must not be before from")
	}
	return s.events.ListBetween(ctx, from, to)
}

func validateEvent(e *model.Event) error {
	if strings.TrimSpace(e.Title) == "" || e.Date.IsZero() {
		return invalid("title and date are required")
	}
	return nil
}

func (s *ContentService) CreateEvent(ctx context.Context, e *model.Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}
	e.NotificationSent = false
	if err := s.events.Create(ctx, e); err != nil {
		return err
	}
	s.broadcast(EventEventCreated, e)
	return nil
}

// UpdateEvent replaces the event's fields with e's.
func (s *ContentService) UpdateEvent(ctx context.Context, id int64, e *model.Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}
	e.ID = id
	return notFound(s.events.Update(ctx, e))
}

func (s *ContentService) DeleteEvent(ctx context.Context, id int64) error {
	return notFound(s.events.Delete(ctx, id))
}

func (s *ContentService) Gurus(ctx context.Context) ([]model.Guru, error) {
	return s.gurus.List(ctx)
}

func (s *ContentService) CreateGuru(ctx context.Context, g *model.Guru) error {
	if strings.TrimSpace(g.Name) == "" {
		return invalid("name is required")
	}
	return s.gurus.Create(ctx, g)
}

func (s *ContentService) UpdateGuru(ctx context.Context, id int64, g *model.Guru) error {
	if strings.TrimSpace(g.Name) == "" {
		return invalid("name is required")
	}
	g.ID = id
	return notFound(s.gurus.Update(ctx, g))
}

func (s *ContentService) DeleteGuru(ctx context.Context, id int64) error {
	return notFound(s.gurus.Delete(ctx, id))
}

func (s *ContentService) Branches(ctx context.Context) ([]model.Branch, error) {
	return s.branches.List(ctx)
}

func (s *ContentService) CreateBranch(ctx context.Context, b *model.Branch) error {
	if strings.TrimSpace(b.Name) == "" {
		return invalid("name is required")
	}
	b.ID = uuid.New().String()
	return s.branches.Create(ctx, b)
}

func (s *ContentService) UpdateBranch(ctx context.Context, id string, b *model.Branch) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	if strings.TrimSpace(b.Name) == "" {
		return invalid("name is required")
	}
	b.ID = id
	return notFound(s.branches.Update(ctx, b))
}

func (s *ContentService) DeleteBranch(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return notFound(s.branches.Delete(ctx, id))
}

// FlashUpdates returns active updates whose expiry date is after today.
func (s *ContentService) FlashUpdates(ctx context.Context) ([]model.FlashUpdate, error) {
	return s.editorial.ListActiveFlash(ctx, model.DateOf(s.now()))
}

func (s *ContentService) CreateFlash(ctx context.Context, f *model.FlashUpdate) error {
	if strings.TrimSpace(f.Message) == "" || f.ExpiryDate.IsZero() {
		return invalid("message and expiryDate are required")
	}
	f.IsActive = true
	if err := s.editorial.CreateFlash(ctx, f); err != nil {
		return err
	}
	s.broadcast(EventFlashUpdate, f)
	return nil
}

// UpdateFlash replaces the update's fields, IsActive included.
func (s *ContentService) UpdateFlash(ctx context.Context, id int64, f *model.FlashUpdate) error {
	if strings.TrimSpace(f.Message) == "" || f.ExpiryDate.IsZero() {
		return invalid("message and expiryDate are required")
	}
	f.ID = id
	if err := s.editorial.UpdateFlash(ctx, f); err != nil {
		return notFound(err)
	}
	s.broadcast(EventFlashUpdate, f)
	return nil
}

func (s *ContentService) DeleteFlash(ctx context.Context, id int64) error {
	return notFound(s.editorial.DeleteFlash(ctx, id))
}

func (s *ContentService) Timings(ctx context.Context) ([]model.Timing, error) {
	return s.editorial.ListActiveTimings(ctx)
}

// AllTimings includes inactive locations.
func (s *ContentService) AllTimings(ctx context.Context) ([]model.Timing, error) {
	return s.editorial.ListAllTimings(ctx)
}

func (s *ContentService) CreateTiming(ctx context.Context, t *model.Timing) error {
	if strings.TrimSpace(t.Location) == "" {
		return invalid("location is required")
	}
	t.IsActive = true
	return s.editorial.CreateTiming(ctx, t)
}

func (s *ContentService) UpdateTiming(ctx context.Context, id int64, t *model.Timing) error {
	if strings.TrimSpace(t.Location) == "" {
		return invalid("location is required")
	}
	t.ID = id
	return notFound(s.editorial.UpdateTiming(ctx, t))
}

func (s *ContentService) Albums(ctx context.Context) ([]model.Album, error) {
	return s.editorial.ListAlbums(ctx)
}

func (s *ContentService) CreateAlbum(ctx context.Context, a *model.Album) error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is required")
	}
	return s.editorial.CreateAlbum(ctx, a)
}

func (s *ContentService) UpdateAlbum(ctx context.Context, id int64, a *model.Album) error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is required")
	}
	a.ID = id
	return notFound(s.editorial.UpdateAlbum(ctx, a))
}

// DeleteAlbum removes the album together with its media.
func (s *ContentService) DeleteAlbum(ctx context.Context, id int64) error {
	return notFound(s.editorial.DeleteAlbum(ctx, id))
}

func (s *ContentService) AlbumMedia(ctx context.Context, albumID int64) ([]model.MediaItem, error) {
	if _, err := s.editorial.GetAlbum(ctx, albumID); err != nil {
		return nil, notFound(err)
	}
	return s.editorial.ListMedia(ctx, albumID)
}

func (s *ContentService) AddMedia(ctx context.Context, m *model.MediaItem) error {
	if m.Type != model.MediaPhoto && m.Type != model.MediaVideo {
		return invalid("type must be PHOTO or VIDEO")
	}
	if strings.TrimSpace(m.URL) == "" {
		return invalid("url is required")
	}
	if _, err := s.editorial.GetAlbum(ctx, m.AlbumID); err != nil {
		return notFound(err)
	}
	return s.editorial.AddMedia(ctx, m)
}

func (s *ContentService) DeleteMedia(ctx context.Context, id int64) error {
	return notFound(s.editorial.DeleteMedia(ctx, id))
}
