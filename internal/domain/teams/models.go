package teams

// Team is the decoded team shape carried by a scheduled game.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Side identifies which half of a matchup a team plays for.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Fallback returns the display name used when a team id is not in the table.
func (s Side) Fallback() string {
	if s == SideHome {
		return "Home"
	}
	return "Away"
}
