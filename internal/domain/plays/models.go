package plays

// Defaults substituted when the upstream omits optional play fields.
const (
	DefaultEvent       = "In Progress"
	DefaultEventType   = "in progress"
	DefaultDescription = "Play description is not yet available."
	DefaultInning      = 0
	DefaultHalfInning  = ""
)

// Result describes the outcome of a single play.
type Result struct {
	PlayType    string `json:"playType"`
	Event       string `json:"event"`
	EventType   string `json:"eventType"`
	Description string `json:"description"`
	AwayScore   int    `json:"awayScore"`
	HomeScore   int    `json:"homeScore"`
}

// Play is one entry of a game's play log with the live win-probability estimate after it.
type Play struct {
	Result                      Result  `json:"result"`
	HomeTeamWinProbability      float64 `json:"homeTeamWinProbability"`
	AwayTeamWinProbability      float64 `json:"awayTeamWinProbability"`
	HomeTeamWinProbabilityAdded float64 `json:"homeTeamWinProbabilityAdded"`
	AboutInning                 int     `json:"aboutInning"`
	AboutHalfInning             string  `json:"aboutHalfInning"`
}

// GameInfo is a game's play log in chronological order.
// Position in the slice is the play's place on the chart's x-axis.
type GameInfo []Play
