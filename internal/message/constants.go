package message

import "time"

// Gemini endpoint settings
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	APIKeyHeader   = "x-goog-api-key"
	HTTPTimeout    = 10 * time.Second
)

// Cache settings
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = time.Minute
	DefaultTimeout   = 5 * time.Second
)

// Fallback messages, formatted with the prize label
const (
	FallbackNoKeyFormat = "Congratulations! You've won %s! Drive safe!"
	FallbackErrorFormat = "Congratulations! You've won %s! Thank you for choosing Indian Oil."
	FallbackEmptyFormat = "Congratulations on winning %s! Enjoy your journey with Indian Oil."
)

// PromptFormat asks for a short cheerful message with a driving tip
const PromptFormat = `Write a short, punchy, and cheerful congratulatory message (max 20 words) for a customer who just won "%s" at an Indian Oil Corporation fuel station.
Include a brief safety reminder or a fuel efficiency tip.
Tone: Professional but energetic.`
