package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	// MatchPageSize is the fixed match-id page requested from the upstream.
	MatchPageSize = 20

	// RemakeThresholdSeconds: games shorter than this are remakes and are
	// never surfaced.
	RemakeThresholdSeconds = 300

	// MasteryLimit caps the mastery entries kept on a profile.
	MasteryLimit = 5
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RecentSearchLimit    = 10
	RecentSearchMaxLimit = 50
)
