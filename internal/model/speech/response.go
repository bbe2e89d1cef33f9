package speech

// TTSResponse is the body returned by /tts.
type TTSResponse struct {
	Audio string `json:"audio"` // hex string
}
