package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

// ErrForbidden is returned when a caller asks for another account's records.
var ErrForbidden = errors.New("forbidden")

// Persistence ports. The pgx repositories satisfy them; unit tests use in-memory fakes.
// Every Get method returns repository.ErrNotFound for a missing row.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
}

type SevaStore interface {
	Create(ctx context.Context, v *model.Seva) error
	GetByID(ctx context.Context, id string) (*model.Seva, error)
	ListActive(ctx context.Context, category model.SevaCategory) ([]model.Seva, error)
	Delete(ctx context.Context, id string) error
}

type SevaBookingStore interface {
	Create(ctx context.Context, b *model.SevaBooking) error
	GetByID(ctx context.Context, id string) (*model.SevaBooking, error)
	UpdatePayment(ctx context.Context, b *model.SevaBooking) error
	ListAll(ctx context.Context) ([]model.SevaBooking, error)
	ListByUser(ctx context.Context, userID string) ([]model.SevaBooking, error)
}

type RoomBookingStore interface {
	Create(ctx context.Context, b *model.RoomBooking) error
	GetByID(ctx context.Context, id string) (*model.RoomBooking, error)
	UpdateStatus(ctx context.Context, id string, status model.RoomBookingStatus) error
	ListAll(ctx context.Context) ([]model.RoomBooking, error)
	ListByUser(ctx context.Context, phone string) ([]model.RoomBooking, error)
}

type AlankaraStore interface {
	Create(ctx context.Context, a *model.DailyAlankara) error
	LatestSince(ctx context.Context, since time.Time) (*model.DailyAlankara, error)
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.DailyAlankara, error)
	Delete(ctx context.Context, id int64) error
}

// Dispatcher delivers out-of-band notifications without blocking the caller.
type Dispatcher interface {
	Email(to, subject, body string)
	Push(phone, title, body, url string)
}

// Broadcaster publishes an event to every live-feed subscriber.
type Broadcaster interface {
	Broadcast(kind string, payload any)
}

// Caller identifies the authenticated account behind a request.
type Caller struct {
	Phone string
	Role  model.Role
}

// resolveUser loads userID for caller. Admins may load any account; everyone else only their own,
// and asking for someone else's is ErrForbidden.
func resolveUser(ctx context.Context, users UserStore, caller Caller, userID string) (*model.User, error) {
	if caller.Role != model.RoleAdmin {
		u, err := users.GetByPhone(ctx, caller.Phone)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
		if u.ID != userID {
			return nil, ErrForbidden
		}
		return u, nil
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}
	u, err := users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
