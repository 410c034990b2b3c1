package push

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(endpoint string) Subscription {
	var s Subscription
	s.Endpoint = endpoint
	s.Keys.P256dh = "p256dh-" + endpoint
	s.Keys.Auth = "auth-" + endpoint
	return s
}

type recordedSend struct {
	mu       sync.Mutex
	payloads map[string][]byte
	status   map[string]int
}

func (r *recordedSend) fn(_ context.Context, payload []byte, s *webpush.Subscription, _ *webpush.Options) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.payloads == nil {
		r.payloads = make(map[string][]byte)
	}
	r.payloads[s.Endpoint] = payload
	code, ok := r.status[s.Endpoint]
	if !ok {
		code = http.StatusCreated
	}
	if code == 0 {
		return nil, errors.New("dial tcp: connection refused")
	}
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for i := 0; i < 12; i++ {
		require.NoError(t, st.Add(ctx, "9000000001", sub(string(rune('a'+i)))))
	}
	list, err := st.List(ctx, "9000000001")
	require.NoError(t, err)
	require.Len(t, list, maxSubsPerPhone)
	assert.Equal(t, "c", list[0].Endpoint, "oldest entries are trimmed")

	require.NoError(t, st.Add(ctx, "9000000001", sub("c")))
	list, _ = st.List(ctx, "9000000001")
	assert.Len(t, list, maxSubsPerPhone, "re-subscribing the same endpoint does not duplicate it")
	assert.Equal(t, "c", list[len(list)-1].Endpoint)

	require.NoError(t, st.Remove(ctx, "9000000001", "c"))
	list, _ = st.List(ctx, "9000000001")
	assert.Len(t, list, maxSubsPerPhone-1)

	phones, err := st.Phones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"9000000001"}, phones)
}

func TestService_SubscribeValidates(t *testing.T) {
	s := NewService(NewMemoryStore(), "pub", "priv", "")
	assert.Error(t, s.Subscribe(context.Background(), "9000000001", Subscription{Endpoint: "https://push.example/x"}))
	assert.NoError(t, s.Subscribe(context.Background(), "9000000001", sub("https://push.example/x")))
}

func TestService_NotifyPrunesGone(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := NewService(st, "pub", "priv", "mailto:admin@example.org")
	rec := &recordedSend{status: map[string]int{
		"https://push.example/gone":    http.StatusGone,
		"https://push.example/missing": http.StatusNotFound,
		"https://push.example/broken":  0,
	}}
	s.send = rec.fn

	for _, e := range []string{"https://push.example/ok", "https://push.example/gone", "https://push.example/missing", "https://push.example/broken"} {
		require.NoError(t, s.Subscribe(ctx, "9000000001", sub(e)))
	}

	n, err := s.Notify(ctx, "9000000001", Message{Title: "Seva booking confirmed", Body: "Kanakabhisheka", URL: "/bookings/history"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var got Message
	require.NoError(t, json.Unmarshal(rec.payloads["https://push.example/ok"], &got))
	assert.Equal(t, "Seva booking confirmed", got.Title)

	left, _ := st.List(ctx, "9000000001")
	endpoints := make([]string, 0, len(left))
	for _, l := range left {
		endpoints = append(endpoints, l.Endpoint)
	}
	assert.ElementsMatch(t, []string{"https://push.example/ok", "https://push.example/broken"}, endpoints)
}

func TestService_DisabledWithoutKeys(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(), "", "", "")
	called := false
	s.send = func(context.Context, []byte, *webpush.Subscription, *webpush.Options) (*http.Response, error) {
		called = true
		return nil, nil
	}
	require.NoError(t, s.Subscribe(ctx, "9000000001", sub("https://push.example/x")))
	n, err := s.NotifyAll(ctx, Message{Title: "t"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, called)
	assert.False(t, s.Enabled())
}

func TestService_NotifyAll(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(), "pub", "priv", "")
	rec := &recordedSend{}
	s.send = rec.fn
	require.NoError(t, s.Subscribe(ctx, "9000000001", sub("https://push.example/1")))
	require.NoError(t, s.Subscribe(ctx, "9000000002", sub("https://push.example/2")))

	n, err := s.NotifyAll(ctx, Message{Title: "Ekadashi today"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGenerateVAPIDKeys(t *testing.T) {
	keys, err := GenerateVAPIDKeys()
	require.NoError(t, err)
	assert.NotEmpty(t, keys.PublicKey)
	assert.NotEmpty(t, keys.PrivateKey)
	assert.NotEqual(t, keys.PublicKey, keys.PrivateKey)
}

func TestEnsureVAPIDKeys_Persists(t *testing.T) {
	path := t.TempDir() + "/vapid.json"
	first, err := EnsureVAPIDKeys(path)
	require.NoError(t, err)
	second, err := EnsureVAPIDKeys(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
