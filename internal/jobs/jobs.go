// Package jobs holds the periodic background work of the API: alankara expiry and event reminders.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/push"
)

// Job is one unit of periodic work; Run returns how many items it handled.
type Job interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

// Every runs job immediately and then on each tick until ctx is done.
// A failed run is logged and does not stop the loop.
func Every(ctx context.Context, interval time.Duration, job Job) {
	runOnce(ctx, job)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, job)
		}
	}
}

func runOnce(ctx context.Context, job Job) {
	defer logger.DeferLogDuration("jobs."+job.Name(), time.Now())()
	n, err := job.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Errorf("job %s: %v", job.Name(), err)
		}
		return
	}
	if n > 0 {
		logger.Infof("job %s: handled %d", job.Name(), n)
	}
}

type Cleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

// AlankaraCleanup expires old daily alankara photos.
type AlankaraCleanup struct {
	svc Cleaner
}

func NewAlankaraCleanup(svc Cleaner) *AlankaraCleanup {
	return &AlankaraCleanup{svc: svc}
}

func (j *AlankaraCleanup) Name() string { return "alankara-cleanup" }

func (j *AlankaraCleanup) Run(ctx context.Context) (int, error) {
	return j.svc.Cleanup(ctx)
}

type ReminderStore interface {
	ListUnnotifiedOn(ctx context.Context, day model.Date) ([]model.Event, error)
	MarkNotified(ctx context.Context, id int64) error
}

type Announcer interface {
	NotifyAll(ctx context.Context, msg push.Message) (int, error)
}

// EventReminder pushes today's events to every subscriber, once per event.
type EventReminder struct {
	events ReminderStore
	push   Announcer
	now    func() time.Time
}

func NewEventReminder(events ReminderStore, announcer Announcer) *EventReminder {
	return &EventReminder{events: events, push: announcer, now: time.Now}
}

func (j *EventReminder) Name() string { return "event-reminder" }

// Run marks an event sent only after its push went out; a failed push is retried on the next run.
func (j *EventReminder) Run(ctx context.Context) (int, error) {
	today := model.DateOf(j.now())
	events, err := j.events.ListUnnotifiedOn(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list events for %s: %w", today, err)
	}
	sent := 0
	for _, e := range events {
		msg := push.Message{Title: "Today: " + e.Title, Body: reminderBody(e), URL: "/events"}
		delivered, err := j.push.NotifyAll(ctx, msg)
		if err != nil {
			logger.Errorf("event reminder %d: %v", e.ID, err)
			continue
		}
		if err := j.events.MarkNotified(ctx, e.ID); err != nil {
			return sent, fmt.Errorf("mark event %d notified: %w", e.ID, err)
		}
		logger.Infof("event reminder %d: delivered to %d subscriptions", e.ID, delivered)
		sent++
	}
	return sent, nil
}

func reminderBody(e model.Event) string {
	switch {
	case e.Tithi != "" && e.Description != "":
		return e.Tithi + " - " + e.Description
	case e.Description != "":
		return e.Description
	case e.Tithi != "":
		return e.Tithi
	}
	return "Join us at the temple today."
}
