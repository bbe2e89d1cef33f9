// Package audio holds the byte-level codecs used by the chat client: turning
// the assistant's hex-encoded TTS payloads into playable clips, and wrapping
// captured PCM into WAV containers before upload.
package audio
