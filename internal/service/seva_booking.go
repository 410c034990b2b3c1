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
	"github.com/seva/internal/payment"
	"github.com/seva/internal/repository"
)

var (
	ErrSevaNotFound    = errors.New("seva not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidSeva     = errors.New("invalid seva")
)

// InitiateRequest is what a devotee submits before checkout.
type InitiateRequest struct {
	SevaID              string    `json:"sevaId"`
	SevaDate            time.Time `json:"sevaDate"`
	DevoteeName         string    `json:"devoteeName"`
	DevoteeRashi        string    `json:"devoteeRashi"`
	DevoteeNakshatra    string    `json:"devoteeNakshatra"`
	DevoteeGothra       string    `json:"devoteeGothra"`
	PrasadaDeliveryMode string    `json:"prasadaDeliveryMode"`
}

// InitiateResult pairs the pending booking with the public key id the checkout widget needs.
type InitiateResult struct {
	Booking *model.SevaBooking `json:"booking"`
	KeyID   string             `json:"razorpayKeyId"`
}

// SevaBookingService runs the seva catalog and the two-phase booking/payment handshake.
type SevaBookingService struct {
	users    UserStore
	sevas    SevaStore
	bookings SevaBookingStore
	gateway  payment.Gateway
	keyID    string
	secret   string
	notify   Dispatcher
	now      func() time.Time
}

func NewSevaBookingService(
	users UserStore,
	sevas SevaStore,
	bookings SevaBookingStore,
	gateway payment.Gateway,
	keyID, secret string,
	notify Dispatcher,
) *SevaBookingService {
	return &SevaBookingService{
		users: users, sevas: sevas, bookings: bookings, gateway: gateway,
		keyID: keyID, secret: secret, notify: notify, now: time.Now,
	}
}

// Initiate opens a gateway order for the seva's amount and then persists a PENDING booking.
// The order is created first; if it fails nothing is written. If the write fails after the
// order exists, the order is left orphaned at the gateway.
func (s *SevaBookingService) Initiate(ctx context.Context, phone string, req InitiateRequest) (*InitiateResult, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, perr := uuid.Parse(req.SevaID); perr != nil {
		return nil, ErrSevaNotFound
	}
	seva, err := s.sevas.GetByID(ctx, req.SevaID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSevaNotFound
	}
	if err != nil {
		return nil, err
	}
	// Soft-deleted sevas stay readable for history but cannot be booked.
	if !seva.IsActive {
		return nil, ErrSevaNotFound
	}

	orderID, err := s.gateway.CreateOrder(ctx, seva.Amount)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	b := &model.SevaBooking{
		ID:                  uuid.New().String(),
		UserID:              user.ID,
		SevaID:              seva.ID,
		SevaTitle:           seva.TitleEnglish,
		SevaDate:            req.SevaDate,
		Status:              model.BookingPending,
		PaymentStatus:       model.PaymentPending,
		OrderID:             orderID,
		AmountPaid:          seva.Amount,
		PrasadaDeliveryMode: req.PrasadaDeliveryMode,
		DevoteeName:         req.DevoteeName,
		DevoteeRashi:        req.DevoteeRashi,
		DevoteeNakshatra:    req.DevoteeNakshatra,
		DevoteeGothra:       req.DevoteeGothra,
		CreatedAt:           s.now().UTC(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		logger.Errorf("seva initiate: order %s created but booking not saved: %v", orderID, err)
		return nil, err
	}
	logger.Infof("seva initiate: booking=%s order=%s amount=%s", b.ID, orderID, seva.Amount.StringFixed(2))
	return &InitiateResult{Booking: b, KeyID: s.keyID}, nil
}

// Complete checks the gateway's signature for the booking's order and records the outcome.
// A match confirms and stores the payment id and signature; a mismatch marks the booking
// FAILED and leaves the payment fields as they were. Repeated calls re-verify each time.
func (s *SevaBookingService) Complete(ctx context.Context, bookingID, paymentID, signature string) (*model.SevaBooking, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, ErrBookingNotFound
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	verified := payment.VerifySignature(b.OrderID, paymentID, signature, s.secret)
	if verified {
		b.PaymentID = paymentID
		b.Signature = signature
		b.Status = model.BookingConfirmed
		b.PaymentStatus = model.PaymentPaid
	} else {
		b.Status = model.BookingFailed
		b.PaymentStatus = model.PaymentFailed
	}
	if err := s.bookings.UpdatePayment(ctx, b); err != nil {
		return nil, err
	}

	if verified {
		logger.Infof("seva complete: booking=%s confirmed", b.ID)
		s.sendConfirmation(ctx, b)
	} else {
		logger.Infof("seva complete: booking=%s signature mismatch", b.ID)
	}
	return b, nil
}

func (s *SevaBookingService) sendConfirmation(ctx context.Context, b *model.SevaBooking) {
	if s.notify == nil {
		return
	}
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Errorf("seva complete: load user %s for notification: %v", b.UserID, err)
		return
	}
	if strings.TrimSpace(u.Email) != "" {
		subject, body := email.SevaConfirmed(b)
		s.notify.Email(u.Email, subject, body)
	}
	s.notify.Push(u.PhoneNumber, "Seva booking confirmed", b.SevaTitle+" on "+b.SevaDate.Format("02 Jan 2006"), "/bookings/history")
}

func (s *SevaBookingService) ListSevas(ctx context.Context, category model.SevaCategory) ([]model.Seva, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidSeva, category)
	}
	return s.sevas.ListActive(ctx, category)
}

func (s *SevaBookingService) ListBookings(ctx context.Context) ([]model.SevaBooking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *SevaBookingService) CreateSeva(ctx context.Context, v *model.Seva) error {
	if strings.TrimSpace(v.TitleEnglish) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSeva)
	}
	if !v.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSeva, v.Category)
	}
	if !v.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidSeva)
	}
	v.ID = uuid.New().String()
	v.IsActive = true
	return s.sevas.Create(ctx, v)
}

func (s *SevaBookingService) DeleteSeva(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrSevaNotFound
	}
	if err := s.sevas.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSevaNotFound
		}
		return err
	}
	return nil
}
