package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seva/internal/model"
	"github.com/seva/internal/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents struct {
	mu       sync.Mutex
	events   []model.Event
	notified map[int64]bool
	asked    model.Date
}

func (f *fakeEvents) ListUnnotifiedOn(_ context.Context, day model.Date) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = day
	var out []model.Event
	for _, e := range f.events {
		if e.Date == day && !f.notified[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvents) MarkNotified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified[id] = true
	return nil
}

type fakeAnnouncer struct {
	msgs []push.Message
	fail map[string]bool
}

func (f *fakeAnnouncer) NotifyAll(_ context.Context, msg push.Message) (int, error) {
	if f.fail[msg.Title] {
		return 0, errors.New("push backend down")
	}
	f.msgs = append(f.msgs, msg)
	return 3, nil
}

func TestEventReminder_SendsTodayOnce(t *testing.T) {
	today := model.NewDate(2026, time.October, 15)
	events := &fakeEvents{
		events: []model.Event{
			{ID: 1, Title: "Deepavali", Date: today, Tithi: "Amavasya"},
			{ID: 2, Title: "Tomorrow", Date: model.NewDate(2026, time.October, 16)},
		},
		notified: map[int64]bool{},
	}
	ann := &fakeAnnouncer{}
	job := NewEventReminder(events, ann)
	job.now = func() time.Time { return time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC) }

	n, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, today, events.asked)
	require.Len(t, ann.msgs, 1)
	assert.Equal(t, "Today: Deepavali", ann.msgs[0].Title)
	assert.Equal(t, "Amavasya", ann.msgs[0].Body)
	assert.True(t, events.notified[1])

	n, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "already notified")
	assert.Len(t, ann.msgs, 1)
}

func TestEventReminder_FailedPushRetriedLater(t *testing.T) {
	today := model.NewDate(2026, time.October, 15)
	events := &fakeEvents{
		events:   []model.Event{{ID: 7, Title: "Rathotsava", Date: today}},
		notified: map[int64]bool{},
	}
	ann := &fakeAnnouncer{fail: map[string]bool{"Today: Rathotsava": true}}
	job := NewEventReminder(events, ann)
	job.now = func() time.Time { return time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC) }

	n, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, events.notified[7])

	ann.fail = nil
	n, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

type cleanerFunc func(context.Context) (int, error)

func (f cleanerFunc) Cleanup(ctx context.Context) (int, error) { return f(ctx) }

func TestEvery_RunsImmediatelyAndOnTick(t *testing.T) {
	var runs atomic.Int32
	job := NewAlankaraCleanup(cleanerFunc(func(context.Context) (int, error) {
		runs.Add(1)
		return 0, errors.New("transient")
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { Every(ctx, 10*time.Millisecond, job); close(done) }()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond, "errors do not stop the loop")
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Every did not stop")
	}
}

func TestReminderBody(t *testing.T) {
	assert.Equal(t, "Ekadashi - Fasting day", reminderBody(model.Event{Tithi: "Ekadashi", Description: "Fasting day"}))
	assert.Equal(t, "Fasting day", reminderBody(model.Event{Description: "Fasting day"}))
	assert.Equal(t, "Join us at the temple today.", reminderBody(model.Event{}))
}
