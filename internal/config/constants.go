package config

import "time"

const (
	// Media size ceilings
	MaxImageSize = 10 * 1024 * 1024
	MaxVideoSize = 100 * 1024 * 1024
	MaxAudioSize = 50 * 1024 * 1024

	// Video duration ceiling (boundary inclusive)
	MaxVideoDuration = 30 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Backend request timeouts
	ChatTimeout     = 90 * time.Second
	UploadTimeout   = 2 * time.Minute
	GenerateTimeout = 5 * time.Minute
	EstimateTimeout = 15 * time.Second

	// Duration probe timeout
	ProbeTimeout = 10 * time.Second

	// Sessions kept in memory before LRU eviction
	MaxSessions = 2048

	// Rate limits (per minute)
	RateLimitPerChat = 12
)
