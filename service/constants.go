package service

import "time"

const (
	GenerationCacheTTL = 24 * time.Hour
	GenerationTimeout  = 30 * time.Second

	DefaultModel         = "gpt-4o"
	DefaultFallbackModel = "gpt-3.5-turbo"
)
