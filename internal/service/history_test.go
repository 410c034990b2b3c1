package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ForPhone(t *testing.T) {
	ctx := context.Background()
	u := &model.User{ID: uuid.NewString(), PhoneNumber: "9876543210", FullName: "Ravi"}
	bookings := servicetest.NewSevaBookings()
	rooms := servicetest.NewRooms()
	now := time.Now().UTC()

	require.NoError(t, bookings.Create(ctx, &model.SevaBooking{
		ID: uuid.NewString(), UserID: u.ID, SevaTitle: "Older", AmountPaid: decimal.NewFromInt(101),
		Status: model.BookingConfirmed, CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, bookings.Create(ctx, &model.SevaBooking{
		ID: uuid.NewString(), UserID: u.ID, SevaTitle: "Newer", AmountPaid: decimal.NewFromInt(51),
		Status: model.BookingPending, CreatedAt: now,
	}))
	require.NoError(t, bookings.Create(ctx, &model.SevaBooking{
		ID: uuid.NewString(), UserID: uuid.NewString(), SevaTitle: "Someone else", CreatedAt: now,
	}))
	require.NoError(t, rooms.Create(ctx, &model.RoomBooking{ID: uuid.NewString(), UserID: u.PhoneNumber, Status: model.RoomPending}))

	svc := NewHistoryService(servicetest.NewUsers(u), bookings, rooms)
	h, err := svc.ForPhone(ctx, u.PhoneNumber)
	require.NoError(t, err)

	require.Len(t, h.SevaHistory, 2)
	assert.Equal(t, "Newer", h.SevaHistory[0].SevaTitle)
	assert.Equal(t, "Older", h.SevaHistory[1].SevaTitle)
	require.Len(t, h.RoomBookings, 1)
	assert.Equal(t, "Ravi", h.RoomBookings[0].UserName)
}

func TestHistory_EmptyListsNotNil(t *testing.T) {
	u := &model.User{ID: uuid.NewString(), PhoneNumber: "9876543210"}
	svc := NewHistoryService(servicetest.NewUsers(u), servicetest.NewSevaBookings(), servicetest.NewRooms())

	h, err := svc.ForPhone(context.Background(), u.PhoneNumber)
	require.NoError(t, err)
	assert.NotNil(t, h.SevaHistory)
	assert.NotNil(t, h.RoomBookings)

	_, err = svc.ForPhone(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHistory_ForUserID(t *testing.T) {
	ctx := context.Background()
	owner := &model.User{ID: uuid.NewString(), PhoneNumber: "9876543210", FullName: "Ravi"}
	other := &model.User{ID: uuid.NewString(), PhoneNumber: "9876500000"}
	rooms := servicetest.NewRooms()
	require.NoError(t, rooms.Create(ctx, &model.RoomBooking{ID: uuid.NewString(), UserID: owner.PhoneNumber, Status: model.RoomPending}))
	svc := NewHistoryService(servicetest.NewUsers(owner, other), servicetest.NewSevaBookings(), rooms)

	h, err := svc.ForUserID(ctx, Caller{Phone: owner.PhoneNumber, Role: model.RoleUser}, owner.ID)
	require.NoError(t, err)
	assert.Len(t, h.RoomBookings, 1)

	_, err = svc.ForUserID(ctx, Caller{Phone: other.PhoneNumber, Role: model.RoleUser}, owner.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	h, err = svc.ForUserID(ctx, Caller{Phone: "9000000001", Role: model.RoleAdmin}, owner.ID)
	require.NoError(t, err)
	require.Len(t, h.RoomBookings, 1)
	assert.Equal(t, "Ravi", h.RoomBookings[0].UserName)

	_, err = svc.ForUserID(ctx, Caller{Phone: "9000000001", Role: model.RoleAdmin}, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.ForUserID(ctx, Caller{Phone: "0000000000", Role: model.RoleUser}, owner.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
