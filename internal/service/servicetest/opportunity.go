package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

// Opportunities is an in-memory OpportunityStore enforcing one application per user and opportunity.
type Opportunities struct {
	mu   sync.Mutex
	byID map[string]*model.VolunteerOpportunity
	apps []*model.VolunteerApplication
}

func NewOpportunities(opportunities ...*model.VolunteerOpportunity) *Opportunities {
	f := &Opportunities{byID: make(map[string]*model.VolunteerOpportunity)}
	for _, o := range opportunities {
		f.byID[o.ID] = o
	}
	return f
}

func (f *Opportunities) Create(_ context.Context, o *model.VolunteerOpportunity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *Opportunities) Update(_ context.Context, o *model.VolunteerOpportunity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	o.ApplicationCount, o.CreatedAt = cur.ApplicationCount, cur.CreatedAt
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *Opportunities) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	kept := f.apps[:0]
	for _, a := range f.apps {
		if a.OpportunityID != id {
			kept = append(kept, a)
		}
	}
	f.apps = kept
	return nil
}

func (f *Opportunities) GetByID(_ context.Context, id string) (*model.VolunteerOpportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.byID[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Opportunities) ListOpen(context.Context) ([]model.VolunteerOpportunity, error) {
	return f.list(func(o *model.VolunteerOpportunity) bool { return o.Status == model.OpportunityOpen }), nil
}

func (f *Opportunities) ListAll(context.Context) ([]model.VolunteerOpportunity, error) {
	return f.list(func(*model.VolunteerOpportunity) bool { return true }), nil
}

func (f *Opportunities) list(keep func(*model.VolunteerOpportunity) bool) []model.VolunteerOpportunity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.VolunteerOpportunity, 0)
	for _, o := range f.byID {
		if keep(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *Opportunities) Apply(_ context.Context, a *model.VolunteerApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[a.OpportunityID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range f.apps {
		if existing.UserID == a.UserID && existing.OpportunityID == a.OpportunityID {
			return repository.ErrDuplicate
		}
	}
	cp := *a
	f.apps = append(f.apps, &cp)
	o.ApplicationCount++
	return nil
}

func (f *Opportunities) ListApplications(_ context.Context, opportunityID string) ([]model.VolunteerApplication, error) {
	return f.applications(func(a *model.VolunteerApplication) bool { return a.OpportunityID == opportunityID }), nil
}

func (f *Opportunities) ListApplicationsByUser(_ context.Context, userID string) ([]model.VolunteerApplication, error) {
	return f.applications(func(a *model.VolunteerApplication) bool { return a.UserID == userID }), nil
}

func (f *Opportunities) applications(keep func(*model.VolunteerApplication) bool) []model.VolunteerApplication {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.VolunteerApplication, 0)
	for _, a := range f.apps {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (f *Opportunities) UpdateApplicationStatus(_ context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.VolunteerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.ID == id {
			a.Status, a.UpdatedAt = status, at
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}
