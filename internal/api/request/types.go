package request

// RegisterPlayerRequest creates a new player
type RegisterPlayerRequest struct {
	DisplayName string `json:"display_name"`
}

// CompleteLevelRequest completes a level on the active session
type CompleteLevelRequest struct {
	Deaths int     `json:"deaths"`
	Choice *string `json:"choice,omitempty"`
	Relic  *string `json:"relic,omitempty"`

	// DurationSeconds is the deprecated manual override for the
	// server-computed level duration
	DurationSeconds *int64 `json:"duration_seconds,omitempty"`
}
