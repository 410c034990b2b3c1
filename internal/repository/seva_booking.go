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

const sevaBookingCols = `b.id, b.user_id, b.seva_id, COALESCE(s.title_english, ''), b.seva_date, b.status, b.payment_status,
	b.razorpay_order_id, b.razorpay_payment_id, b.razorpay_signature, b.amount_paid, b.prasada_delivery_mode,
	b.devotee_name, b.devotee_rashi, b.devotee_nakshatra, b.devotee_gothra, b.created_at`

const sevaBookingFrom = ` FROM seva_bookings b LEFT JOIN sevas s ON s.id = b.seva_id`

type SevaBookingRepository struct {
	pool *pgxpool.Pool
}

func NewSevaBookingRepository(pool *pgxpool.Pool) *SevaBookingRepository {
	return &SevaBookingRepository{pool: pool}
}

func scanSevaBooking(s interface{ Scan(dest ...any) error }, b *model.SevaBooking) error {
	return s.Scan(&b.ID, &b.UserID, &b.SevaID, &b.SevaTitle, &b.SevaDate, &b.Status, &b.PaymentStatus,
		&b.OrderID, &b.PaymentID, &b.Signature, &b.AmountPaid, &b.PrasadaDeliveryMode,
		&b.DevoteeName, &b.DevoteeRashi, &b.DevoteeNakshatra, &b.DevoteeGothra, &b.CreatedAt)
}

func (r *SevaBookingRepository) Create(ctx context.Context, b *model.SevaBooking) error {
	defer logger.DeferLogDuration("sevaBooking.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO seva_bookings (id, user_id, seva_id, seva_date, status, payment_status, razorpay_order_id,
		 razorpay_payment_id, razorpay_signature, amount_paid, prasada_delivery_mode, devotee_name, devotee_rashi,
		 devotee_nakshatra, devotee_gothra, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.UserID, b.SevaID, b.SevaDate, b.Status, b.PaymentStatus, b.OrderID, b.PaymentID, b.Signature,
		b.AmountPaid, b.PrasadaDeliveryMode, b.DevoteeName, b.DevoteeRashi, b.DevoteeNakshatra, b.DevoteeGothra,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sevaBookingRepo.Create: %w", err)
	}
	return nil
}

func (r *SevaBookingRepository) GetByID(ctx context.Context, id string) (*model.SevaBooking, error) {
	defer logger.DeferLogDuration("sevaBooking.GetByID", time.Now())()
	b := &model.SevaBooking{}
	row := r.pool.QueryRow(ctx, `SELECT `+sevaBookingCols+sevaBookingFrom+` WHERE b.id = $1`, id)
	if err := scanSevaBooking(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sevaBookingRepo.GetByID: %w", err)
	}
	return b, nil
}

// UpdatePayment persists the outcome of a completion: both statuses plus payment id and signature.
func (r *SevaBookingRepository) UpdatePayment(ctx context.Context, b *model.SevaBooking) error {
	defer logger.DeferLogDuration("sevaBooking.UpdatePayment", time.Now())()
	tag, err := r.pool.Exec(ctx,
		`UPDATE seva_bookings SET status = $2, payment_status = $3, razorpay_payment_id = $4, razorpay_signature = $5
		 WHERE id = $1`,
		b.ID, b.Status, b.PaymentStatus, b.PaymentID, b.Signature,
	)
	if err != nil {
		return fmt.Errorf("sevaBookingRepo.UpdatePayment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SevaBookingRepository) ListAll(ctx context.Context) ([]model.SevaBooking, error) {
	defer logger.DeferLogDuration("sevaBooking.ListAll", time.Now())()
	return r.query(ctx, "sevaBookingRepo.ListAll",
		`SELECT `+sevaBookingCols+sevaBookingFrom+` ORDER BY b.created_at DESC`)
}

func (r *SevaBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.SevaBooking, error) {
	defer logger.DeferLogDuration("sevaBooking.ListByUser", time.Now())()
	return r.query(ctx, "sevaBookingRepo.ListByUser",
		`SELECT `+sevaBookingCols+sevaBookingFrom+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *SevaBookingRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.SevaBooking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.SevaBooking, 0)
	for rows.Next() {
		var b model.SevaBooking
		if err := scanSevaBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
