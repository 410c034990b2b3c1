package ws

// OutgoingMessage is one live-feed frame: {"type": "...", "payload": ...}.
type OutgoingMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
