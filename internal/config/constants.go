package config

import "time"

// Storage connection pool settings
const (
	DBMaxOpenConns     = 10
	DBMinIdleConns     = 1
	DBConnIdleTime     = 30 * time.Second
	DBConnectTimeout   = 10 * time.Second
	DBPingTimeout      = 5 * time.Second
	DBOperationTimeout = 5 * time.Second
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 30 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Admin login
const (
	ChallengeTTL         = 10 * time.Minute
	SessionMaxAge        = 7 * 24 * time.Hour
	ChallengeIssueLimit  = 3
	ChallengeIssueWindow = 5 * time.Minute
	NotifyTimeout        = 10 * time.Second
)

// Background job intervals
const ChallengeSweepInterval = 5 * time.Minute

// Public endpoint limits per client IP
const (
	PublicPostLimitPerMin = 10
	PublicReadLimitPerMin = 120
)

// Public content responses may be cached by a CDN for a minute.
const PublicCacheControl = "public, s-maxage=60, stale-while-revalidate=300"
