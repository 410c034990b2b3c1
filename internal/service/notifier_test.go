package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/seva/internal/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject)
	return m.err
}

type recordingPusher struct {
	mu   sync.Mutex
	msgs map[string]push.Message
}

func (p *recordingPusher) Notify(_ context.Context, phone string, msg push.Message) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.msgs == nil {
		p.msgs = make(map[string]push.Message)
	}
	p.msgs[phone] = msg
	return 1, nil
}

func TestNotifier_DeliversAndDrains(t *testing.T) {
	mailer := &recordingMailer{}
	pusher := &recordingPusher{}
	n, err := NewNotifier(2, mailer, pusher)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		n.Email("devotee@example.org", "Room Booking Received", "body")
	}
	n.Push("9000000001", "Seva booking confirmed", "Kanakabhisheka", "/bookings/history")
	n.Email("", "skipped", "no address")
	n.Close(5 * time.Second)

	assert.Len(t, mailer.sent, 10)
	assert.Equal(t, "Seva booking confirmed", pusher.msgs["9000000001"].Title)
	assert.Equal(t, "/bookings/history", pusher.msgs["9000000001"].URL)
}

func TestNotifier_ErrorsAndPanicsAreContained(t *testing.T) {
	n, err := NewNotifier(1, &recordingMailer{err: errors.New("smtp down")}, panickyPusher{})
	require.NoError(t, err)
	n.Email("a@b.c", "s", "b")
	n.Push("9000000001", "t", "b", "")
	n.Close(5 * time.Second)
}

type panickyPusher struct{}

func (panickyPusher) Notify(context.Context, string, push.Message) (int, error) {
	panic("boom")
}
