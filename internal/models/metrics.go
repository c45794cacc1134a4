package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot exposed on the health API.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	PlatformCallCount        uint64    `json:"platform_call_count"`
	AveragePlatformCallMs    float64   `json:"average_platform_call_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
