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

var ErrNotFound = errors.New("not found")

const userCols = `id, phone_number, full_name, email, gothra, rashi, nakshatra, address, city, state, pincode,
	role, consent_data_storage, consent_communications, fcm_token, is_volunteer, volunteer_request, is_admin, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// scanUser reads one row in userCols order.
func scanUser(s interface{ Scan(dest ...any) error }, u *model.User) error {
	return s.Scan(&u.ID, &u.PhoneNumber, &u.FullName, &u.Email, &u.Gothra, &u.Rashi, &u.Nakshatra,
		&u.Address, &u.City, &u.State, &u.Pincode, &u.Role, &u.ConsentDataStorage, &u.ConsentCommunications,
		&u.FCMToken, &u.IsVolunteer, &u.VolunteerRequest, &u.IsAdmin, &u.CreatedAt)
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	defer logger.DeferLogDuration("user.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (`+userCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		u.ID, u.PhoneNumber, u.FullName, u.Email, u.Gothra, u.Rashi, u.Nakshatra, u.Address, u.City, u.State,
		u.Pincode, u.Role, u.ConsentDataStorage, u.ConsentCommunications, u.FCMToken, u.IsVolunteer,
		u.VolunteerRequest, u.IsAdmin, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

// Update rewrites the profile columns of an existing user. Role and admin flag are not touched.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	defer logger.DeferLogDuration("user.Update", time.Now())()
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET full_name = $2, email = $3, gothra = $4, rashi = $5, nakshatra = $6, address = $7,
		 city = $8, state = $9, pincode = $10, consent_data_storage = $11, consent_communications = $12,
		 fcm_token = $13, is_volunteer = $14, volunteer_request = $15
		 WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.Gothra, u.Rashi, u.Nakshatra, u.Address, u.City, u.State, u.Pincode,
		u.ConsentDataStorage, u.ConsentCommunications, u.FCMToken, u.IsVolunteer, u.VolunteerRequest,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	defer logger.DeferLogDuration("user.GetByID", time.Now())()
	u := &model.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	defer logger.DeferLogDuration("user.GetByPhone", time.Now())()
	u := &model.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE phone_number = $1`, phone)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByPhone: %w", err)
	}
	return u, nil
}

// List returns one page ordered by creation time, newest first, plus the total row count.
func (r *UserRepository) List(ctx context.Context, page, size int) ([]model.User, int, error) {
	defer logger.DeferLogDuration("user.List", time.Now())()
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List count: %w", err)
	}
	users, err := r.query(ctx, "userRepo.List",
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	defer logger.DeferLogDuration("user.ListAll", time.Now())()
	return r.query(ctx, "userRepo.ListAll", `SELECT `+userCols+` FROM users ORDER BY created_at, id`)
}

// SetVolunteer sets the volunteer flag and clears any pending volunteer request.
func (r *UserRepository) SetVolunteer(ctx context.Context, id string, isVolunteer bool) (*model.User, error) {
	defer logger.DeferLogDuration("user.SetVolunteer", time.Now())()
	u := &model.User{}
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET is_volunteer = $2, volunteer_request = FALSE WHERE id = $1 RETURNING `+userCols,
		id, isVolunteer)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.SetVolunteer: %w", err)
	}
	return u, nil
}

func (r *UserRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return users, nil
}
