package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

var (
	ErrOpportunityNotFound = errors.New("volunteer opportunity not found")
	ErrOpportunityClosed   = errors.New("volunteer opportunity is closed")
	ErrAlreadyApplied      = errors.New("already applied for this opportunity")
	ErrApplicationNotFound = errors.New("volunteer application not found")
	ErrInvalidOpportunity  = errors.New("invalid volunteer opportunity")
)

type OpportunityStore interface {
	Create(ctx context.Context, o *model.VolunteerOpportunity) error
	Update(ctx context.Context, o *model.VolunteerOpportunity) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.VolunteerOpportunity, error)
	ListOpen(ctx context.Context) ([]model.VolunteerOpportunity, error)
	ListAll(ctx context.Context) ([]model.VolunteerOpportunity, error)
	Apply(ctx context.Context, a *model.VolunteerApplication) error
	ListApplications(ctx context.Context, opportunityID string) ([]model.VolunteerApplication, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]model.VolunteerApplication, error)
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.VolunteerApplication, error)
}

type OpportunityRequest struct {
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	RequiredSkills string                  `json:"requiredSkills"`
	ImageURL       string                  `json:"imageUrl"`
	Status         model.OpportunityStatus `json:"status"`
}

// VolunteerOpportunityService posts volunteer calls and tracks who applied to them.
type VolunteerOpportunityService struct {
	users         UserStore
	opportunities OpportunityStore
	now           func() time.Time
}

func NewVolunteerOpportunityService(users UserStore, opportunities OpportunityStore) *VolunteerOpportunityService {
	return &VolunteerOpportunityService{users: users, opportunities: opportunities, now: time.Now}
}

func invalidOpportunity(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOpportunity, msg)
}

func (s *VolunteerOpportunityService) Open(ctx context.Context) ([]model.VolunteerOpportunity, error) {
	return s.opportunities.ListOpen(ctx)
}

func (s *VolunteerOpportunityService) All(ctx context.Context) ([]model.VolunteerOpportunity, error) {
	return s.opportunities.ListAll(ctx)
}

func (s *VolunteerOpportunityService) get(ctx context.Context, id string) (*model.VolunteerOpportunity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOpportunityNotFound
	}
	o, err := s.opportunities.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOpportunityNotFound
	}
	return o, err
}

// Create posts a new opportunity. An empty status means OPEN.
func (s *VolunteerOpportunityService) Create(ctx context.Context, req OpportunityRequest) (*model.VolunteerOpportunity, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidOpportunity("title is required")
	}
	if req.Status == "" {
		req.Status = model.OpportunityOpen
	}
	if !req.Status.Valid() {
		return nil, invalidOpportunity("status must be OPEN or CLOSED")
	}
	now := s.now().UTC()
	o := &model.VolunteerOpportunity{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		ImageURL:       req.ImageURL,
		Status:         req.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.opportunities.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the editable fields; an empty status keeps the current one.
func (s *VolunteerOpportunityService) Update(ctx context.Context, id string, req OpportunityRequest) (*model.VolunteerOpportunity, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidOpportunity("title is required")
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, invalidOpportunity("status must be OPEN or CLOSED")
	}
	o, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Title, o.Description, o.RequiredSkills, o.ImageURL = req.Title, req.Description, req.RequiredSkills, req.ImageURL
	if req.Status != "" {
		o.Status = req.Status
	}
	o.UpdatedAt = s.now().UTC()
	if err := s.opportunities.Update(ctx, o); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return o, nil
}

// Delete removes the opportunity along with its applications.
func (s *VolunteerOpportunityService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrOpportunityNotFound
	}
	if err := s.opportunities.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOpportunityNotFound
		}
		return err
	}
	return nil
}

// Apply files a PENDING application for phone's account. Each user applies to an opportunity once.
func (s *VolunteerOpportunityService) Apply(ctx context.Context, phone, opportunityID string) (*model.VolunteerApplication, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	o, err := s.get(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if o.Status != model.OpportunityOpen {
		return nil, ErrOpportunityClosed
	}
	now := s.now().UTC()
	a := &model.VolunteerApplication{
		ID:               uuid.New().String(),
		UserID:           u.ID,
		OpportunityID:    o.ID,
		OpportunityTitle: o.Title,
		ApplicantName:    u.FullName,
		ApplicantPhone:   u.PhoneNumber,
		Status:           model.ApplicationPending,
		AppliedAt:        now,
		UpdatedAt:        now,
	}
	switch err := s.opportunities.Apply(ctx, a); {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrAlreadyApplied
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrOpportunityNotFound
	case err != nil:
		return nil, err
	}
	logger.Infof("volunteer application: opportunity=%s user=%s", o.ID, logger.MaskPhone(phone))
	return a, nil
}

func (s *VolunteerOpportunityService) Applications(ctx context.Context, opportunityID string) ([]model.VolunteerApplication, error) {
	if _, err := s.get(ctx, opportunityID); err != nil {
		return nil, err
	}
	return s.opportunities.ListApplications(ctx, opportunityID)
}

func (s *VolunteerOpportunityService) MyApplications(ctx context.Context, phone string) ([]model.VolunteerApplication, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.opportunities.ListApplicationsByUser(ctx, u.ID)
}

func (s *VolunteerOpportunityService) SetApplicationStatus(ctx context.Context, applicationID string, status model.ApplicationStatus) (*model.VolunteerApplication, error) {
	if !status.Valid() {
		return nil, invalidOpportunity("status must be PENDING, APPROVED or REJECTED")
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, ErrApplicationNotFound
	}
	a, err := s.opportunities.UpdateApplicationStatus(ctx, applicationID, status, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	return a, err
}
