package mlbstats

import "time"

const (
	providerName       = "mlbstats"
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultSportID     = 1
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "winprob-viewer"
)
