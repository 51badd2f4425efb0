package viewer

import (
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
	"github.com/preston-bernstein/winprob-viewer/internal/series"
)

// Static messages shown for failed loads. The cause is never surfaced to the user.
const (
	ScheduleFailedMessage = "Unable to load games for this date."
	GameInfoFailedMessage = "Unable to load win probability for this game."
)

// Option is one selectable game.
type Option struct {
	GamePk int    `json:"gamePk"`
	Label  string `json:"label"`
}

// HoverPoint is the datum under the pointer plus its tooltip text.
type HoverPoint struct {
	series.Datum
	Tooltip string `json:"tooltip"`
}

// View is everything a renderer needs for one frame.
type View struct {
	Date            string         `json:"date"`
	ScheduleStatus  string         `json:"scheduleStatus"`
	ScheduleMessage string         `json:"scheduleMessage,omitempty"`
	Options         []Option       `json:"options,omitempty"`
	GameInfoStatus  string         `json:"gameInfoStatus"`
	GameInfoMessage string         `json:"gameInfoMessage,omitempty"`
	SelectedGamePk  int            `json:"selectedGamePk,omitempty"`
	HomeName        string         `json:"homeName,omitempty"`
	AwayName        string         `json:"awayName,omitempty"`
	Series          []series.Datum `json:"series,omitempty"`
	Hover           *HoverPoint    `json:"hover,omitempty"`
}

// Render projects s into a View. The series is derived fresh on every call.
func Render(s *State) View {
	v := View{
		Date:           s.Date,
		ScheduleStatus: ScheduleStatusName(s.Schedule),
		GameInfoStatus: GameInfoStatusName(s.GameInfo),
	}

	switch st := s.Schedule.(type) {
	case ScheduleLoading:
	case ScheduleFailed:
		v.ScheduleMessage = ScheduleFailedMessage
	case ScheduleLoaded:
		list := st.Schedule.Games()
		v.Options = make([]Option, 0, len(list))
		for _, g := range list {
			v.Options = append(v.Options, Option{GamePk: g.GamePk, Label: g.Label()})
		}
	}

	if s.SelectedGame != nil {
		v.SelectedGamePk = s.SelectedGame.GamePk
	}

	switch st := s.GameInfo.(type) {
	case GameInfoNotRequested, GameInfoLoading:
	case GameInfoFailed:
		v.GameInfoMessage = GameInfoFailedMessage
	case GameInfoLoaded:
		v.Series = series.ToSeries(st.Info)
		if s.SelectedGame != nil {
			v.HomeName = teams.ShortName(s.SelectedGame.Teams.Home.Team.ID, teams.SideHome)
			v.AwayName = teams.ShortName(s.SelectedGame.Teams.Away.Team.ID, teams.SideAway)
		} else {
			v.HomeName = teams.SideHome.Fallback()
			v.AwayName = teams.SideAway.Fallback()
		}
		if s.Hover != nil {
			if d, ok := series.Lookup(v.Series, *s.Hover); ok {
				v.Hover = &HoverPoint{Datum: d, Tooltip: d.Tooltip(v.HomeName, v.AwayName)}
			}
		}
	}

	return v
}
