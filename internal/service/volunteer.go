package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

var (
	ErrAlreadyVolunteer  = errors.New("already registered as volunteer")
	ErrVolunteerNotFound = errors.New("volunteer registration not found")
)

type VolunteerStore interface {
	Create(ctx context.Context, v *model.Volunteer) error
	GetByUserID(ctx context.Context, userID string) (*model.Volunteer, error)
}

// UserAdminStore is the admin view over all accounts.
type UserAdminStore interface {
	List(ctx context.Context, page, size int) ([]model.User, int, error)
	ListAll(ctx context.Context) ([]model.User, error)
	SetVolunteer(ctx context.Context, id string, isVolunteer bool) (*model.User, error)
}

type VolunteerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	HobbiesOrTalents string `json:"hobbiesOrTalents"`
	PastExperience   string `json:"pastExperience"`
}

// VolunteerService registers volunteers and backs the admin user screens.
type VolunteerService struct {
	users      UserStore
	volunteers VolunteerStore
	admin      UserAdminStore
	now        func() time.Time
}

func NewVolunteerService(users UserStore, volunteers VolunteerStore, admin UserAdminStore) *VolunteerService {
	return &VolunteerService{users: users, volunteers: volunteers, admin: admin, now: time.Now}
}

// Register records the volunteer form for phone's account; each account registers once.
func (s *VolunteerService) Register(ctx context.Context, phone string, req VolunteerRequest) (*model.Volunteer, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = u.FullName
	}
	mail := strings.TrimSpace(req.Email)
	if mail == "" {
		mail = u.Email
	}
	v := &model.Volunteer{
		ID:               uuid.New().String(),
		UserID:           u.ID,
		Name:             name,
		PhoneNumber:      phone,
		Email:            mail,
		HobbiesOrTalents: req.HobbiesOrTalents,
		PastExperience:   req.PastExperience,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.volunteers.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyVolunteer
		}
		return nil, err
	}
	logger.Infof("volunteer registered: %s", logger.MaskPhone(phone))
	return v, nil
}

func (s *VolunteerService) Mine(ctx context.Context, phone string) (*model.Volunteer, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	v, err := s.volunteers.GetByUserID(ctx, u.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVolunteerNotFound
	}
	return v, err
}

// ForUser returns userID's volunteer registration on behalf of caller.
func (s *VolunteerService) ForUser(ctx context.Context, caller Caller, userID string) (*model.Volunteer, error) {
	u, err := resolveUser(ctx, s.users, caller, userID)
	if err != nil {
		return nil, err
	}
	v, err := s.volunteers.GetByUserID(ctx, u.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVolunteerNotFound
	}
	return v, err
}

type UserPage struct {
	Content       []model.User `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int          `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
}

func (s *VolunteerService) Users(ctx context.Context, page, size int) (*UserPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 200 {
		size = 20
	}
	users, total, err := s.admin.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Content: users, Page: page, Size: size, TotalElements: total,
		TotalPages: (total + size - 1) / size,
	}, nil
}

func (s *VolunteerService) ExportUsers(ctx context.Context) ([]model.User, error) {
	return s.admin.ListAll(ctx)
}

// SetVolunteer approves or revokes volunteer status; the pending request flag is cleared either way.
func (s *VolunteerService) SetVolunteer(ctx context.Context, userID string, isVolunteer bool) (*model.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.admin.SetVolunteer(ctx, userID, isVolunteer)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
