package model

// CreateSessionResponse is returned when a planning session starts.
type CreateSessionResponse struct {
	SessionID string            `json:"session_id"`
	State     ConversationState `json:"state"`
	Question  string            `json:"question"`
}

// MessageRequest is one user turn.
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// MessageResponse is the assistant's side of one turn.
type MessageResponse struct {
	SessionID string            `json:"session_id"`
	State     ConversationState `json:"state"`
	Reply     string            `json:"reply"`
	Options   []string          `json:"options,omitempty"`
	Venues    []Venue           `json:"venues,omitempty"`
	Took      int64             `json:"took_ms"`
}

// FeedbackRequest records a user action on a recommended venue.
type FeedbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	VenueID   string `json:"venue_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse acknowledges recorded feedback.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
