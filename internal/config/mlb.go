package config

import "time"

// MLBConfig controls how we talk to the MLB Stats API. Keys carry the MLB_ prefix.
type MLBConfig struct {
	BaseURL           string        `envconfig:"BASE_URL" default:"https://statsapi.mlb.com/api/v1"`
	SportID           int           `envconfig:"SPORT_ID" default:"1"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"winprob-viewer"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"60"`
}
