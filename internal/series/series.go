// Package series derives the win-probability chart data from a decoded play log.
package series

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// Datum is one plotted point, derived from the play at the same position.
type Datum struct {
	Index            float64 `json:"index"`
	HomeWinProb      float64 `json:"homeWinProb"`
	AwayWinProb      float64 `json:"awayWinProb"`
	Description      string  `json:"description"`
	ProbabilityDelta float64 `json:"probabilityDelta"`
	Inning           int     `json:"inning"`
	HalfInning       string  `json:"halfInning"`
	AwayScore        int     `json:"awayScore"`
	HomeScore        int     `json:"homeScore"`
}

// ToSeries maps each play to a Datum, preserving order. Index is the 1-based play position.
func ToSeries(info plays.GameInfo) []Datum {
	out := make([]Datum, len(info))
	for i, p := range info {
		out[i] = Datum{
			Index:            float64(i + 1),
			HomeWinProb:      p.HomeTeamWinProbability,
			AwayWinProb:      p.AwayTeamWinProbability,
			Description:      p.Result.Description,
			ProbabilityDelta: p.HomeTeamWinProbabilityAdded,
			Inning:           p.AboutInning,
			HalfInning:       p.AboutHalfInning,
			AwayScore:        p.Result.AwayScore,
			HomeScore:        p.Result.HomeScore,
		}
	}
	return out
}

// Lookup resolves a 1-based hover index against the current series.
func Lookup(points []Datum, index int) (Datum, bool) {
	if index < 1 || index > len(points) {
		return Datum{}, false
	}
	return points[index-1], true
}

// InningLabel renders "Top 3" / "Bottom 7"; empty until the inning is known.
func (d Datum) InningLabel() string {
	if d.Inning <= 0 {
		return ""
	}
	half := strings.TrimSpace(d.HalfInning)
	if half == "" {
		return fmt.Sprintf("Inning %d", d.Inning)
	}
	first, size := utf8.DecodeRuneInString(half)
	return fmt.Sprintf("%s %d", string(unicode.ToUpper(first))+strings.ToLower(half[size:]), d.Inning)
}

// Tooltip builds the hover text for a point, naming teams by their short display names.
func (d Datum) Tooltip(home, away string) string {
	var b strings.Builder
	if label := d.InningLabel(); label != "" {
		b.WriteString(label)
		b.WriteString(" | ")
	}
	fmt.Fprintf(&b, "%s %d, %s %d\n", away, d.AwayScore, home, d.HomeScore)
	b.WriteString(d.Description)
	fmt.Fprintf(&b, "\n%s win probability %.1f%% (%+.1f)", home, d.HomeWinProb, d.ProbabilityDelta)
	return b.String()
}
