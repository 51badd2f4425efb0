package config

// Provider names accepted in PROVIDER.
const (
	ProviderMLBStats = "mlbstats"
	ProviderFixture  = "fixture"
)

const mlbPrefix = "MLB"
