package chat

// Status is the shell's interaction state.
type Status string

const (
	StatusIdle             Status = "idle"
	StatusAwaitingResponse Status = "awaiting_response"
)
