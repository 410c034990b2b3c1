// Package servicetest provides in-memory stores and recorders for service and handler tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Users is an in-memory UserStore. Err, when set, fails phone lookups.
type Users struct {
	mu    sync.Mutex
	byID  map[string]*model.User
	Err   error
	Saves int
}

func NewUsers(users ...*model.User) *Users {
	f := &Users{byID: make(map[string]*model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *Users) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	f.Saves++
	return nil
}

func (f *Users) Update(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.Saves++
	return nil
}

func (f *Users) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Users) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.byID {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *Users) List(_ context.Context, page, size int) ([]model.User, int, error) {
	all, _ := f.ListAll(context.Background())
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (f *Users) ListAll(context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhoneNumber < out[j].PhoneNumber })
	return out, nil
}

func (f *Users) SetVolunteer(_ context.Context, id string, isVolunteer bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsVolunteer = isVolunteer
	u.VolunteerRequest = false
	cp := *u
	return &cp, nil
}

type Sevas struct {
	byID map[string]*model.Seva
}

func NewSevas(sevas ...*model.Seva) *Sevas {
	f := &Sevas{byID: make(map[string]*model.Seva)}
	for _, s := range sevas {
		f.byID[s.ID] = s
	}
	return f
}

func (f *Sevas) Create(_ context.Context, v *model.Seva) error {
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *Sevas) GetByID(_ context.Context, id string) (*model.Seva, error) {
	if v, ok := f.byID[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Sevas) ListActive(_ context.Context, category model.SevaCategory) ([]model.Seva, error) {
	out := []model.Seva{}
	for _, v := range f.byID {
		if v.IsActive && (category == "" || v.Category == category) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TitleEnglish < out[j].TitleEnglish })
	return out, nil
}

func (f *Sevas) Delete(_ context.Context, id string) error {
	v, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.IsActive = false
	return nil
}

// SevaBookings counts writes so tests can assert that nothing was persisted. Err, when set, fails Create.
type SevaBookings struct {
	mu      sync.Mutex
	byID    map[string]*model.SevaBooking
	Creates int
	Updates int
	Err     error
}

func NewSevaBookings() *SevaBookings {
	return &SevaBookings{byID: make(map[string]*model.SevaBooking)}
}

func (f *SevaBookings) Create(_ context.Context, b *model.SevaBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	cp := *b
	f.byID[b.ID] = &cp
	f.Creates++
	return nil
}

func (f *SevaBookings) GetByID(_ context.Context, id string) (*model.SevaBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *SevaBookings) UpdatePayment(_ context.Context, b *model.SevaBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status, stored.PaymentStatus = b.Status, b.PaymentStatus
	stored.PaymentID, stored.Signature = b.PaymentID, b.Signature
	f.Updates++
	return nil
}

func (f *SevaBookings) ListAll(context.Context) ([]model.SevaBooking, error) {
	return f.list(func(*model.SevaBooking) bool { return true }), nil
}

func (f *SevaBookings) ListByUser(_ context.Context, userID string) ([]model.SevaBooking, error) {
	return f.list(func(b *model.SevaBooking) bool { return b.UserID == userID }), nil
}

func (f *SevaBookings) list(keep func(*model.SevaBooking) bool) []model.SevaBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.SevaBooking{}
	for _, b := range f.byID {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type Rooms struct {
	mu   sync.Mutex
	byID map[string]*model.RoomBooking
}

func NewRooms() *Rooms {
	return &Rooms{byID: make(map[string]*model.RoomBooking)}
}

func (f *Rooms) Create(_ context.Context, b *model.RoomBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *Rooms) GetByID(_ context.Context, id string) (*model.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Rooms) UpdateStatus(_ context.Context, id string, status model.RoomBookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *Rooms) ListAll(context.Context) ([]model.RoomBooking, error) {
	return f.list(""), nil
}

func (f *Rooms) ListByUser(_ context.Context, phone string) ([]model.RoomBooking, error) {
	return f.list(phone), nil
}

func (f *Rooms) list(phone string) []model.RoomBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.RoomBooking{}
	for _, b := range f.byID {
		if phone == "" || b.UserID == phone {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type Alankara struct {
	mu      sync.Mutex
	nextID  int64
	Records []model.DailyAlankara
}

func (f *Alankara) Create(_ context.Context, a *model.DailyAlankara) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	f.Records = append(f.Records, *a)
	return nil
}

func (f *Alankara) LatestSince(_ context.Context, since time.Time) (*model.DailyAlankara, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *model.DailyAlankara
	for i := range f.Records {
		r := &f.Records[i]
		if !r.UploadedAt.Before(since) && (best == nil || r.UploadedAt.After(best.UploadedAt)) {
			best = r
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *Alankara) ListOlderThan(_ context.Context, cutoff time.Time) ([]model.DailyAlankara, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.DailyAlankara
	for _, r := range f.Records {
		if r.UploadedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Alankara) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.Records[:0]
	for _, r := range f.Records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.Records = kept
	return nil
}

// Dispatcher captures notifications instead of delivering them.
type Dispatcher struct {
	mu     sync.Mutex
	Emails []string
	Pushes []string
}

func (d *Dispatcher) Email(to, subject, _ string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Emails = append(d.Emails, to+"|"+subject)
}

func (d *Dispatcher) Push(phone, title, _, _ string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Pushes = append(d.Pushes, phone+"|"+title)
}

// Feed records broadcast kinds.
type Feed struct {
	mu    sync.Mutex
	Kinds []string
}

func (r *Feed) Broadcast(kind string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Kinds = append(r.Kinds, kind)
}

// Gateway is a testify mock of payment.Gateway.
type Gateway struct {
	mock.Mock
}

func (m *Gateway) CreateOrder(ctx context.Context, amount decimal.Decimal) (string, error) {
	args := m.Called(ctx, amount)
	return args.String(0), args.Error(1)
}
