package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/seva/internal/logger"
)

// Message is the JSON payload the service worker renders.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

type sendFunc func(ctx context.Context, payload []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

// Service stores subscriptions and delivers Web Push messages signed with VAPID.
// Without keys, subscriptions are still stored but nothing is sent.
type Service struct {
	store     Store
	vapid     *webpush.Options
	publicKey string
	send      sendFunc
}

func NewService(store Store, publicKey, privateKey, subscriber string) *Service {
	s := &Service{store: store, publicKey: publicKey, send: webpush.SendNotificationWithContext}
	if publicKey != "" && privateKey != "" {
		if subscriber == "" {
			subscriber = "seva-push"
		}
		s.vapid = &webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             3600,
		}
	} else {
		logger.Info("push: VAPID keys not set, notifications disabled (subscriptions are still stored)")
	}
	return s
}

func (s *Service) Enabled() bool { return s.vapid != nil }

func (s *Service) PublicKey() string { return s.publicKey }

func (s *Service) Subscribe(ctx context.Context, phone string, sub Subscription) error {
	if !sub.Valid() {
		return fmt.Errorf("subscription requires endpoint, keys.p256dh and keys.auth")
	}
	return s.store.Add(ctx, phone, sub)
}

func (s *Service) Unsubscribe(ctx context.Context, phone, endpoint string) error {
	return s.store.Remove(ctx, phone, endpoint)
}

// Notify sends msg to every subscription of phone and returns how many were accepted.
// Subscriptions the push service reports as gone (404/410) are pruned.
func (s *Service) Notify(ctx context.Context, phone string, msg Message) (int, error) {
	if s.vapid == nil {
		return 0, nil
	}
	subs, err := s.store.List(ctx, phone)
	if err != nil {
		return 0, err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range subs {
		sub := &subs[i]
		wp := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
		}
		resp, err := s.send(ctx, payload, wp, s.vapid)
		if err != nil {
			logger.Errorf("push send %s: %v", shortEndpoint(sub.Endpoint), err)
			continue
		}
		resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
			if err := s.store.Remove(ctx, phone, sub.Endpoint); err != nil {
				logger.Errorf("push prune %s: %v", shortEndpoint(sub.Endpoint), err)
			}
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			sent++
		default:
			logger.Errorf("push send %s: status %d", shortEndpoint(sub.Endpoint), resp.StatusCode)
		}
	}
	return sent, nil
}

// NotifyAll sends msg to every subscribed phone.
func (s *Service) NotifyAll(ctx context.Context, msg Message) (int, error) {
	if s.vapid == nil {
		return 0, nil
	}
	phones, err := s.store.Phones(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, p := range phones {
		n, err := s.Notify(ctx, p, msg)
		if err != nil {
			logger.Errorf("push notify %s: %v", logger.MaskPhone(p), err)
			continue
		}
		total += n
	}
	return total, nil
}

func shortEndpoint(e string) string {
	if len(e) > 50 {
		return e[:50]
	}
	return e
}
