package service

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/push"
)

const notifyTimeout = 30 * time.Second

// Mailer sends one plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Pusher delivers a Web Push message to one phone's subscriptions.
type Pusher interface {
	Notify(ctx context.Context, phone string, msg push.Message) (int, error)
}

// Notifier runs email and push deliveries on a bounded goroutine pool so request
// handlers return before SMTP or the push service answers.
type Notifier struct {
	pool   *ants.Pool
	mailer Mailer
	pusher Pusher
	wg     sync.WaitGroup
}

func NewNotifier(workers int, mailer Mailer, pusher Pusher) (*Notifier, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(p interface{}) {
			logger.Errorf("notifier: task panic: %v", p)
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Notifier{pool: pool, mailer: mailer, pusher: pusher}, nil
}

func (n *Notifier) Email(to, subject, body string) {
	if n.mailer == nil || to == "" {
		return
	}
	n.submit("email", func(ctx context.Context) {
		if err := n.mailer.Send(ctx, to, subject, body); err != nil {
			logger.Errorf("notifier: email %q: %v", subject, err)
		}
	})
}

func (n *Notifier) Push(phone, title, body, url string) {
	if n.pusher == nil || phone == "" {
		return
	}
	n.submit("push", func(ctx context.Context) {
		if _, err := n.pusher.Notify(ctx, phone, push.Message{Title: title, Body: body, URL: url}); err != nil {
			logger.Errorf("notifier: push %s: %v", logger.MaskPhone(phone), err)
		}
	})
}

func (n *Notifier) submit(kind string, task func(ctx context.Context)) {
	n.wg.Add(1)
	err := n.pool.Submit(func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		task(ctx)
	})
	if err != nil {
		n.wg.Done()
		logger.Errorf("notifier: submit %s: %v", kind, err)
	}
}

// Close waits for queued deliveries up to timeout and releases the pool.
func (n *Notifier) Close(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		logger.Errorf("notifier: %d deliveries still running at shutdown", n.pool.Running())
	}
	n.pool.Release()
}
