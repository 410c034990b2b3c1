package servicetest

import (
	"context"
	"sync"

	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

// Volunteers is an in-memory VolunteerStore; Create flips the user's flag on users like the repository does.
type Volunteers struct {
	mu     sync.Mutex
	users  *Users
	byUser map[string]*model.Volunteer
}

func NewVolunteers(users *Users) *Volunteers {
	return &Volunteers{users: users, byUser: make(map[string]*model.Volunteer)}
}

func (f *Volunteers) Create(ctx context.Context, v *model.Volunteer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[v.UserID]; ok {
		return repository.ErrDuplicate
	}
	cp := *v
	f.byUser[v.UserID] = &cp
	_, err := f.users.SetVolunteer(ctx, v.UserID, true)
	return err
}

func (f *Volunteers) GetByUserID(_ context.Context, userID string) (*model.Volunteer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.byUser[userID]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
