package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/email"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

var (
	ErrInvalidBooking      = errors.New("invalid booking request")
	ErrRoomBookingNotFound = errors.New("room booking not found")
)

type RoomBookingRequest struct {
	CheckInDate        model.Date `json:"checkInDate"`
	CheckOutDate       model.Date `json:"checkOutDate"`
	NumberOfGuests     int        `json:"numberOfGuests"`
	NumberOfRooms      int        `json:"numberOfRooms"`
	ConsentDataStorage bool       `json:"consentDataStorage"`
}

func (r RoomBookingRequest) validate() error {
	switch {
	case r.CheckInDate.IsZero() || r.CheckOutDate.IsZero():
		return fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidBooking)
	case r.CheckOutDate.Before(r.CheckInDate):
		return fmt.Errorf("%w: check-out date must not be before check-in date", ErrInvalidBooking)
	case r.NumberOfGuests < 1:
		return fmt.Errorf("%w: at least one guest is required", ErrInvalidBooking)
	case r.NumberOfRooms < 1:
		return fmt.Errorf("%w: at least one room is required", ErrInvalidBooking)
	}
	return nil
}

// RoomBookingService handles guest-house requests and their admin review.
type RoomBookingService struct {
	rooms  RoomBookingStore
	users  UserStore
	notify Dispatcher
	now    func() time.Time
}

func NewRoomBookingService(rooms RoomBookingStore, users UserStore, notify Dispatcher) *RoomBookingService {
	return &RoomBookingService{rooms: rooms, users: users, notify: notify, now: time.Now}
}

// Book stores a PENDING request keyed by the devotee's phone and acknowledges it by email.
func (s *RoomBookingService) Book(ctx context.Context, phone string, req RoomBookingRequest) (*model.RoomBooking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	b := &model.RoomBooking{
		ID:                 uuid.New().String(),
		UserID:             phone,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		NumberOfGuests:     req.NumberOfGuests,
		NumberOfRooms:      req.NumberOfRooms,
		ConsentDataStorage: req.ConsentDataStorage,
		Status:             model.RoomPending,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.rooms.Create(ctx, b); err != nil {
		return nil, err
	}
	if u := s.lookupUser(ctx, phone); u != nil {
		b.UserName = u.FullName
		if strings.TrimSpace(u.Email) != "" && s.notify != nil {
			subject, body := email.RoomBookingReceived(b)
			s.notify.Email(u.Email, subject, body)
		}
	}
	return b, nil
}

func (s *RoomBookingService) Approve(ctx context.Context, id string) (*model.RoomBooking, error) {
	return s.decide(ctx, id, model.RoomApproved)
}

func (s *RoomBookingService) Reject(ctx context.Context, id string) (*model.RoomBooking, error) {
	return s.decide(ctx, id, model.RoomRejected)
}

func (s *RoomBookingService) decide(ctx context.Context, id string, status model.RoomBookingStatus) (*model.RoomBooking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRoomBookingNotFound
	}
	b, err := s.rooms.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomBookingNotFound
		}
		return nil, err
	}
	b.Status = status
	logger.Infof("room booking %s -> %s", id, status)

	if u := s.lookupUser(ctx, b.UserID); u != nil && s.notify != nil {
		if strings.TrimSpace(u.Email) != "" {
			subject, body := email.RoomBookingDecision(b, u.FullName)
			s.notify.Email(u.Email, subject, body)
		}
		s.notify.Push(u.PhoneNumber, "Room booking "+strings.ToLower(string(status)),
			"Check-in "+b.CheckInDate.String(), "/bookings/history")
	}
	return b, nil
}

func (s *RoomBookingService) ListAll(ctx context.Context) ([]model.RoomBooking, error) {
	return s.rooms.ListAll(ctx)
}

func (s *RoomBookingService) lookupUser(ctx context.Context, phone string) *model.User {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Errorf("room booking: load user %s: %v", logger.MaskPhone(phone), err)
		}
		return nil
	}
	return u
}
