package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

const (
	defaultAlankaraMaxAge = 24 * time.Hour
	EventAlankara         = "alankara_published"
)

var (
	ErrNoAlankara       = errors.New("no alankara in the last 24 hours")
	ErrAlankaraImageURL = errors.New("imageUrl is required")
)

// ObjectDeleter removes a stored upload by key.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// AlankaraService publishes the daily decoration photo and expires old ones.
type AlankaraService struct {
	store   AlankaraStore
	objects ObjectDeleter
	feed    Broadcaster
	maxAge  time.Duration
	now     func() time.Time
}

func NewAlankaraService(store AlankaraStore, objects ObjectDeleter, feed Broadcaster, maxAge time.Duration) *AlankaraService {
	if maxAge <= 0 {
		maxAge = defaultAlankaraMaxAge
	}
	return &AlankaraService{store: store, objects: objects, feed: feed, maxAge: maxAge, now: time.Now}
}

// Latest returns the newest photo uploaded within the visibility window.
func (s *AlankaraService) Latest(ctx context.Context) (*model.DailyAlankara, error) {
	a, err := s.store.LatestSince(ctx, s.now().Add(-s.maxAge))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoAlankara
	}
	return a, err
}

func (s *AlankaraService) Publish(ctx context.Context, imageURL string) (*model.DailyAlankara, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, ErrAlankaraImageURL
	}
	a := &model.DailyAlankara{ImageURL: imageURL, UploadedAt: s.now().UTC()}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	if s.feed != nil {
		s.feed.Broadcast(EventAlankara, a)
	}
	return a, nil
}

// UploadedToday reports whether a photo exists since local midnight.
func (s *AlankaraService) UploadedToday(ctx context.Context) (bool, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, err := s.store.LatestSince(ctx, midnight)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cleanup deletes records older than the window together with their stored image.
// Object deletion failures are logged; the row is removed regardless.
func (s *AlankaraService) Cleanup(ctx context.Context) (int, error) {
	old, err := s.store.ListOlderThan(ctx, s.now().Add(-s.maxAge))
	if err != nil {
		return 0, fmt.Errorf("list expired alankara: %w", err)
	}
	removed := 0
	for _, a := range old {
		if key := ObjectKeyFromURL(a.ImageURL); key != "" && s.objects != nil {
			if err := s.objects.Delete(ctx, key); err != nil {
				logger.Errorf("alankara cleanup: delete object %s: %v", key, err)
			}
		}
		if err := s.store.Delete(ctx, a.ID); err != nil {
			logger.Errorf("alankara cleanup: delete record %d: %v", a.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("alankara cleanup: removed %d expired records", removed)
	}
	return removed, nil
}

// ObjectKeyFromURL returns the path segment after the last slash, ignoring any query string.
func ObjectKeyFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return url[strings.LastIndex(url, "/")+1:]
}
