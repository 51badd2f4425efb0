package teams

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Entry is one row of the static team table.
type Entry struct {
	ID        int
	ShortName string
	FullName  string
}

// minSimilarity is the Levenshtein similarity a query must reach to match a full name.
const minSimilarity = 0.6

var table = []Entry{
	{ID: 108, ShortName: "Angels", FullName: "Los Angeles Angels"},
	{ID: 109, ShortName: "D-backs", FullName: "Arizona Diamondbacks"},
	{ID: 110, ShortName: "Orioles", FullName: "Baltimore Orioles"},
	{ID: 111, ShortName: "Red Sox", FullName: "Boston Red Sox"},
	{ID: 112, ShortName: "Cubs", FullName: "Chicago Cubs"},
	{ID: 113, ShortName: "Reds", FullName: "Cincinnati Reds"},
	{ID: 114, ShortName: "Guardians", FullName: "Cleveland Guardians"},
	{ID: 115, ShortName: "Rockies", FullName: "Colorado Rockies"},
	{ID: 116, ShortName: "Tigers", FullName: "Detroit Tigers"},
	{ID: 117, ShortName: "Astros", FullName: "Houston Astros"},
	{ID: 118, ShortName: "Royals", FullName: "Kansas City Royals"},
	{ID: 119, ShortName: "Dodgers", FullName: "Los Angeles Dodgers"},
	{ID: 120, ShortName: "Nationals", FullName: "Washington Nationals"},
	{ID: 121, ShortName: "Mets", FullName: "New York Mets"},
	{ID: 133, ShortName: "Athletics", FullName: "Oakland Athletics"},
	{ID: 134, ShortName: "Pirates", FullName: "Pittsburgh Pirates"},
	{ID: 135, ShortName: "Padres", FullName: "San Diego Padres"},
	{ID: 136, ShortName: "Mariners", FullName: "Seattle Mariners"},
	{ID: 137, ShortName: "Giants", FullName: "San Francisco Giants"},
	{ID: 138, ShortName: "Cardinals", FullName: "St. Louis Cardinals"},
	{ID: 139, ShortName: "Rays", FullName: "Tampa Bay Rays"},
	{ID: 140, ShortName: "Rangers", FullName: "Texas Rangers"},
	{ID: 141, ShortName: "Blue Jays", FullName: "Toronto Blue Jays"},
	{ID: 142, ShortName: "Twins", FullName: "Minnesota Twins"},
	{ID: 143, ShortName: "Phillies", FullName: "Philadelphia Phillies"},
	{ID: 144, ShortName: "Braves", FullName: "Atlanta Braves"},
	{ID: 145, ShortName: "White Sox", FullName: "Chicago White Sox"},
	{ID: 146, ShortName: "Marlins", FullName: "Miami Marlins"},
	{ID: 147, ShortName: "Yankees", FullName: "New York Yankees"},
	{ID: 158, ShortName: "Brewers", FullName: "Milwaukee Brewers"},
}

var byID = func() map[int]Entry {
	m := make(map[int]Entry, len(table))
	for _, e := range table {
		m[e.ID] = e
	}
	return m
}()

// ShortName resolves a team id to its short display name, falling back to the side's label.
func ShortName(id int, side Side) string {
	if e, ok := byID[id]; ok {
		return e.ShortName
	}
	return side.Fallback()
}

// Lookup returns the table entry for id.
func Lookup(id int) (Entry, bool) {
	e, ok := byID[id]
	return e, ok
}

// All returns a copy of the team table.
func All() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Find matches a free-form query ("yankees", "NY Yankees", "red sox") against the table.
// Exact short/full name matches win; otherwise the closest full name by Levenshtein similarity.
func Find(query string) (Entry, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Entry{}, false
	}
	for _, e := range table {
		if strings.EqualFold(e.ShortName, q) || strings.EqualFold(e.FullName, q) {
			return e, true
		}
	}
	var (
		best      Entry
		bestScore float64
		found     bool
	)
	for _, e := range table {
		full := strings.ToLower(e.FullName)
		score := similarity(q, full)
		if fuzzy.Match(q, full) || fuzzy.Match(q, strings.ToLower(e.ShortName)) {
			// subsequence hits rank above pure edit-distance hits
			score += 1
		}
		if score >= minSimilarity && score > bestScore {
			best, bestScore, found = e, score, true
		}
	}
	return best, found
}

func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}
