package chat

// TextRequest carries the question of /ask_text, sent as a query parameter.
type TextRequest struct {
	Question string `json:"question"`
}
