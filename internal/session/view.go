package session

import "github.com/kylasweb/IOC-Spinwheel/internal/domain"

// View is a point-in-time copy of a session for rendering
type View struct {
	SessionID      string           `json:"session_id"`
	State          domain.GameState `json:"state"`
	Mode           domain.GameMode  `json:"mode,omitempty"`
	Mobile         string           `json:"mobile,omitempty"`
	Prize          *domain.Prize    `json:"prize,omitempty"`
	WinID          string           `json:"win_id,omitempty"`
	Message        string           `json:"message,omitempty"`
	MessagePending bool             `json:"message_pending"`
	RevealPending  bool             `json:"reveal_pending"`
	Error          string           `json:"error,omitempty"`
	RedemptionCode string           `json:"redemption_code,omitempty"`
}
