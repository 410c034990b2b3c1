package handler

import (
	"net/http"

	"github.com/seva/internal/config"
)

// ConfigHandler exposes the public settings a client needs before login.
type ConfigHandler struct {
	cfg         *config.Config
	pushEnabled bool
}

func NewConfigHandler(cfg *config.Config, pushEnabled bool) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, pushEnabled: pushEnabled}
}

type publicConfig struct {
	RazorpayKeyID  string `json:"razorpayKeyId"`
	PushEnabled    bool   `json:"pushEnabled"`
	VAPIDPublicKey string `json:"vapidPublicKey,omitempty"`
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := publicConfig{RazorpayKeyID: h.cfg.Razorpay.KeyID, PushEnabled: h.pushEnabled}
	if h.pushEnabled {
		resp.VAPIDPublicKey = h.cfg.Push.VAPIDPublicKey
	}
	writeJSON(w, http.StatusOK, resp)
}
