package speech

// TTSRequest is the body of /tts.
type TTSRequest struct {
	Text string `json:"text"`
}
