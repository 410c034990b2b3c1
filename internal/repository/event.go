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

const eventCols = `id, title, date, tithi, description, image_url, category, notification_sent`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(s interface{ Scan(dest ...any) error }, e *model.Event) error {
	return s.Scan(&e.ID, &e.Title, &e.Date, &e.Tithi, &e.Description, &e.ImageURL, &e.Category, &e.NotificationSent)
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	defer logger.DeferLogDuration("event.Create", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (title, date, tithi, description, image_url, category, notification_sent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.Title, e.Date, e.Tithi, e.Description, e.ImageURL, e.Category, e.NotificationSent,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("eventRepo.Create: %w", err)
	}
	return nil
}

// Update rewrites the editable fields. Moving an event to another date re-arms its reminder.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	defer logger.DeferLogDuration("event.Update", time.Now())()
	err := r.pool.QueryRow(ctx,
		`UPDATE events SET title = $2, date = $3, tithi = $4, description = $5, image_url = $6, category = $7,
		        notification_sent = notification_sent AND date = $3
		 WHERE id = $1 RETURNING notification_sent`,
		e.ID, e.Title, e.Date, e.Tithi, e.Description, e.ImageURL, e.Category,
	).Scan(&e.NotificationSent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("eventRepo.Update: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("event.Delete", time.Now())()
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListAll(ctx context.Context) ([]model.Event, error) {
	defer logger.DeferLogDuration("event.ListAll", time.Now())()
	return r.query(ctx, "eventRepo.ListAll", `SELECT `+eventCols+` FROM events ORDER BY date, id`)
}

// ListBetween returns events dated within [from, to], both inclusive.
func (r *EventRepository) ListBetween(ctx context.Context, from, to model.Date) ([]model.Event, error) {
	defer logger.DeferLogDuration("event.ListBetween", time.Now())()
	return r.query(ctx, "eventRepo.ListBetween",
		`SELECT `+eventCols+` FROM events WHERE date BETWEEN $1 AND $2 ORDER BY date, id`, from, to)
}

// ListUnnotifiedOn returns the events of day whose reminder has not gone out yet.
func (r *EventRepository) ListUnnotifiedOn(ctx context.Context, day model.Date) ([]model.Event, error) {
	defer logger.DeferLogDuration("event.ListUnnotifiedOn", time.Now())()
	return r.query(ctx, "eventRepo.ListUnnotifiedOn",
		`SELECT `+eventCols+` FROM events WHERE date = $1 AND NOT notification_sent ORDER BY id`, day)
}

func (r *EventRepository) MarkNotified(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("event.MarkNotified", time.Now())()
	if _, err := r.pool.Exec(ctx, `UPDATE events SET notification_sent = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("eventRepo.MarkNotified: %w", err)
	}
	return nil
}

func (r *EventRepository) Search(ctx context.Context, query string, limit int) ([]model.Event, error) {
	defer logger.DeferLogDuration("event.Search", time.Now())()
	return r.query(ctx, "eventRepo.Search",
		`SELECT `+eventCols+` FROM events WHERE title ILIKE $1 OR description ILIKE $1 ORDER BY date DESC LIMIT $2`,
		likePattern(query), limit)
}

func (r *EventRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
