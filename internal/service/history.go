package service

import (
	"context"
	"errors"
	"time"

	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
	"github.com/shopspring/decimal"
)

type SevaHistoryItem struct {
	ID         string              `json:"id"`
	SevaTitle  string              `json:"sevaTitle"`
	SevaDate   time.Time           `json:"sevaDate"`
	AmountPaid decimal.Decimal     `json:"amountPaid"`
	Status     model.BookingStatus `json:"status"`
}

type BookingHistory struct {
	SevaHistory  []SevaHistoryItem   `json:"sevaHistory"`
	RoomBookings []model.RoomBooking `json:"roomBookings"`
}

// HistoryService assembles a devotee's seva and room bookings, newest first.
type HistoryService struct {
	users    UserStore
	bookings SevaBookingStore
	rooms    RoomBookingStore
}

func NewHistoryService(users UserStore, bookings SevaBookingStore, rooms RoomBookingStore) *HistoryService {
	return &HistoryService{users: users, bookings: bookings, rooms: rooms}
}

func (s *HistoryService) ForPhone(ctx context.Context, phone string) (*BookingHistory, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.build(ctx, u)
}

// ForUserID returns userID's history on behalf of the caller. Only admins may read another account.
func (s *HistoryService) ForUserID(ctx context.Context, caller Caller, userID string) (*BookingHistory, error) {
	u, err := resolveUser(ctx, s.users, caller, userID)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, u)
}

func (s *HistoryService) build(ctx context.Context, u *model.User) (*BookingHistory, error) {
	sevas, err := s.bookings.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListByUser(ctx, u.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []model.RoomBooking{}
	}
	h := &BookingHistory{
		SevaHistory:  make([]SevaHistoryItem, 0, len(sevas)),
		RoomBookings: rooms,
	}
	for _, b := range sevas {
		h.SevaHistory = append(h.SevaHistory, SevaHistoryItem{
			ID: b.ID, SevaTitle: b.SevaTitle, SevaDate: b.SevaDate, AmountPaid: b.AmountPaid, Status: b.Status,
		})
	}
	for i := range h.RoomBookings {
		h.RoomBookings[i].UserName = u.FullName
	}
	return h, nil
}
