package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
)

const roomBookingCols = `r.id, r.user_id, COALESCE(u.full_name, ''), r.check_in_date, r.check_out_date,
	r.number_of_guests, r.number_of_rooms, r.consent, r.status, r.created_at`

const roomBookingFrom = ` FROM room_bookings r LEFT JOIN users u ON u.phone_number = r.user_id`

type RoomBookingRepository struct {
	pool *pgxpool.Pool
}

func NewRoomBookingRepository(pool *pgxpool.Pool) *RoomBookingRepository {
	return &RoomBookingRepository{pool: pool}
}

func scanRoomBooking(s interface{ Scan(dest ...any) error }, b *model.RoomBooking) error {
	return s.Scan(&b.ID, &b.UserID, &b.UserName, &b.CheckInDate, &b.CheckOutDate,
		&b.NumberOfGuests, &b.NumberOfRooms, &b.ConsentDataStorage, &b.Status, &b.CreatedAt)
}

func (r *RoomBookingRepository) Create(ctx context.Context, b *model.RoomBooking) error {
	defer logger.DeferLogDuration("roomBooking.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO room_bookings (id, user_id, check_in_date, check_out_date, number_of_guests, number_of_rooms,
		 consent, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.UserID, b.CheckInDate, b.CheckOutDate, b.NumberOfGuests, b.NumberOfRooms,
		b.ConsentDataStorage, b.Status, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("roomBookingRepo.Create: %w", err)
	}
	return nil
}

func (r *RoomBookingRepository) GetByID(ctx context.Context, id string) (*model.RoomBooking, error) {
	defer logger.DeferLogDuration("roomBooking.GetByID", time.Now())()
	b := &model.RoomBooking{}
	if err := scanRoomBooking(r.pool.QueryRow(ctx, `SELECT `+roomBookingCols+roomBookingFrom+` WHERE r.id = $1`, id), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("roomBookingRepo.GetByID: %w", err)
	}
	return b, nil
}

func (r *RoomBookingRepository) UpdateStatus(ctx context.Context, id string, status model.RoomBookingStatus) error {
	defer logger.DeferLogDuration("roomBooking.UpdateStatus", time.Now())()
	tag, err := r.pool.Exec(ctx, `UPDATE room_bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("roomBookingRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomBookingRepository) ListAll(ctx context.Context) ([]model.RoomBooking, error) {
	defer logger.DeferLogDuration("roomBooking.ListAll", time.Now())()
	return r.query(ctx, "roomBookingRepo.ListAll", `SELECT `+roomBookingCols+roomBookingFrom+` ORDER BY r.created_at DESC`)
}

// ListByUser lists the bookings of one phone number, newest first.
func (r *RoomBookingRepository) ListByUser(ctx context.Context, phone string) ([]model.RoomBooking, error) {
	defer logger.DeferLogDuration("roomBooking.ListByUser", time.Now())()
	return r.query(ctx, "roomBookingRepo.ListByUser",
		`SELECT `+roomBookingCols+roomBookingFrom+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, phone)
}

func (r *RoomBookingRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.RoomBooking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.RoomBooking, 0)
	for rows.Next() {
		var b model.RoomBooking
		if err := scanRoomBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
