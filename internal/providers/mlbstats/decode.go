package mlbstats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
)

// DecodeError reports a payload that does not match the expected schema.
// Path locates the offending value, e.g. "dates[0].games[3].teams.home.team.id".
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode: " + e.Reason
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

// DecodeSchedule validates and decodes a schedule payload.
func DecodeSchedule(data []byte) (games.Schedule, error) {
	root, err := parse(data)
	if err != nil {
		return games.Schedule{}, err
	}
	obj, err := root.object()
	if err != nil {
		return games.Schedule{}, err
	}
	total, err := obj.requireInt("totalItems")
	if err != nil {
		return games.Schedule{}, err
	}
	days, err := obj.requireArray("dates")
	if err != nil {
		return games.Schedule{}, err
	}
	out := games.Schedule{TotalItems: total, Dates: make([]games.GameDay, 0, len(days))}
	for _, d := range days {
		day, err := decodeGameDay(d)
		if err != nil {
			return games.Schedule{}, err
		}
		out.Dates = append(out.Dates, day)
	}
	return out, nil
}

// DecodeGameInfo validates and decodes a win-probability payload: a bare array of plays.
// One bad play fails the whole log.
func DecodeGameInfo(data []byte) (plays.GameInfo, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}
	items, err := root.array()
	if err != nil {
		return nil, err
	}
	out := make(plays.GameInfo, 0, len(items))
	for _, item := range items {
		p, err := decodePlay(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeGameDay(n node) (games.GameDay, error) {
	obj, err := n.object()
	if err != nil {
		return games.GameDay{}, err
	}
	date, err := obj.requireString("date")
	if err != nil {
		return games.GameDay{}, err
	}
	total, err := obj.requireInt("totalItems")
	if err != nil {
		return games.GameDay{}, err
	}
	items, err := obj.requireArray("games")
	if err != nil {
		return games.GameDay{}, err
	}
	day := games.GameDay{Date: date, TotalItems: total, Games: make([]games.Game, 0, len(items))}
	for _, item := range items {
		g, err := decodeGame(item)
		if err != nil {
			return games.GameDay{}, err
		}
		day.Games = append(day.Games, g)
	}
	return day, nil
}

func decodeGame(n node) (games.Game, error) {
	obj, err := n.object()
	if err != nil {
		return games.Game{}, err
	}
	pk, err := obj.requireInt("gamePk")
	if err != nil {
		return games.Game{}, err
	}
	guid, err := obj.requireString("gameGuid")
	if err != nil {
		return games.Game{}, err
	}
	teamsNode, err := obj.requireObject("teams")
	if err != nil {
		return games.Game{}, err
	}
	away, err := decodeTeamSide(teamsNode, "away")
	if err != nil {
		return games.Game{}, err
	}
	home, err := decodeTeamSide(teamsNode, "home")
	if err != nil {
		return games.Game{}, err
	}
	return games.Game{
		GamePk:   pk,
		GameGUID: guid,
		Teams:    games.Matchup{Home: home, Away: away},
	}, nil
}

func decodeTeamSide(parent object, key string) (games.TeamSide, error) {
	side, err := parent.requireObject(key)
	if err != nil {
		return games.TeamSide{}, err
	}
	teamObj, err := side.requireObject("team")
	if err != nil {
		return games.TeamSide{}, err
	}
	id, err := teamObj.requireInt("id")
	if err != nil {
		return games.TeamSide{}, err
	}
	name, err := teamObj.requireString("name")
	if err != nil {
		return games.TeamSide{}, err
	}
	series, err := side.requireInt("seriesNumber")
	if err != nil {
		return games.TeamSide{}, err
	}
	return games.TeamSide{Team: teams.Team{ID: id, Name: name}, SeriesNumber: series}, nil
}

func decodePlay(n node) (plays.Play, error) {
	obj, err := n.object()
	if err != nil {
		return plays.Play{}, err
	}
	result, err := decodeResult(obj)
	if err != nil {
		return plays.Play{}, err
	}
	homeProb, err := obj.requireProbability("homeTeamWinProbability")
	if err != nil {
		return plays.Play{}, err
	}
	awayProb, err := obj.requireProbability("awayTeamWinProbability")
	if err != nil {
		return plays.Play{}, err
	}
	added, err := obj.requireFloat("homeTeamWinProbabilityAdded")
	if err != nil {
		return plays.Play{}, err
	}

	inning, half := plays.DefaultInning, plays.DefaultHalfInning
	about, ok, err := obj.optionalObject("about")
	if err != nil {
		return plays.Play{}, err
	}
	if ok {
		if inning, err = about.optionalInt("inning", plays.DefaultInning); err != nil {
			return plays.Play{}, err
		}
		if half, err = about.optionalString("halfInning", plays.DefaultHalfInning); err != nil {
			return plays.Play{}, err
		}
	}

	return plays.Play{
		Result:                      result,
		HomeTeamWinProbability:      homeProb,
		AwayTeamWinProbability:      awayProb,
		HomeTeamWinProbabilityAdded: added,
		AboutInning:                 inning,
		AboutHalfInning:             half,
	}, nil
}

func decodeResult(play object) (plays.Result, error) {
	obj, err := play.requireObject("result")
	if err != nil {
		return plays.Result{}, err
	}
	playType, err := obj.requireString("type")
	if err != nil {
		return plays.Result{}, err
	}
	event, err := obj.optionalString("event", plays.DefaultEvent)
	if err != nil {
		return plays.Result{}, err
	}
	eventType, err := obj.optionalString("eventType", plays.DefaultEventType)
	if err != nil {
		return plays.Result{}, err
	}
	desc, err := obj.optionalString("description", plays.DefaultDescription)
	if err != nil {
		return plays.Result{}, err
	}
	away, err := obj.requireInt("awayScore")
	if err != nil {
		return plays.Result{}, err
	}
	home, err := obj.requireInt("homeScore")
	if err != nil {
		return plays.Result{}, err
	}
	return plays.Result{
		PlayType:    playType,
		Event:       event,
		EventType:   eventType,
		Description: desc,
		AwayScore:   away,
		HomeScore:   home,
	}, nil
}

// node is a parsed JSON value with the path it was found at.
type node struct {
	path  string
	value any
}

// object is a JSON object with its path.
type object struct {
	path   string
	fields map[string]any
}

func parse(data []byte) (node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return node{}, &DecodeError{Reason: "malformed json: " + err.Error()}
	}
	if dec.More() {
		return node{}, &DecodeError{Reason: "unexpected data after top-level value"}
	}
	return node{value: v}, nil
}

func (n node) object() (object, error) {
	m, ok := n.value.(map[string]any)
	if !ok {
		return object{}, n.mismatch("object")
	}
	return object{path: n.path, fields: m}, nil
}

func (n node) array() ([]node, error) {
	items, ok := n.value.([]any)
	if !ok {
		return nil, n.mismatch("array")
	}
	out := make([]node, len(items))
	for i, item := range items {
		out[i] = node{path: fmt.Sprintf("%s[%d]", n.path, i), value: item}
	}
	return out, nil
}

func (n node) asString() (string, error) {
	s, ok := n.value.(string)
	if !ok {
		return "", n.mismatch("string")
	}
	return s, nil
}

func (n node) asInt() (int, error) {
	num, ok := n.value.(json.Number)
	if !ok {
		return 0, n.mismatch("integer")
	}
	v, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, &DecodeError{Path: n.path, Reason: fmt.Sprintf("expected integer, got %s", num)}
	}
	return v, nil
}

func (n node) asFloat() (float64, error) {
	num, ok := n.value.(json.Number)
	if !ok {
		return 0, n.mismatch("number")
	}
	v, err := num.Float64()
	if err != nil {
		return 0, &DecodeError{Path: n.path, Reason: fmt.Sprintf("expected number, got %s", num)}
	}
	return v, nil
}

func (n node) mismatch(want string) error {
	return &DecodeError{Path: n.path, Reason: fmt.Sprintf("expected %s, got %s", want, jsonKind(n.value))}
}

// lookup returns the field when present and not null.
func (o object) lookup(key string) (node, bool) {
	path := key
	if o.path != "" {
		path = o.path + "." + key
	}
	v, ok := o.fields[key]
	if !ok || v == nil {
		return node{path: path}, false
	}
	return node{path: path, value: v}, true
}

func (o object) require(key string) (node, error) {
	n, ok := o.lookup(key)
	if !ok {
		return node{}, &DecodeError{Path: n.path, Reason: "required field missing"}
	}
	return n, nil
}

func (o object) requireObject(key string) (object, error) {
	n, err := o.require(key)
	if err != nil {
		return object{}, err
	}
	return n.object()
}

func (o object) optionalObject(key string) (object, bool, error) {
	n, ok := o.lookup(key)
	if !ok {
		return object{}, false, nil
	}
	obj, err := n.object()
	return obj, err == nil, err
}

func (o object) requireArray(key string) ([]node, error) {
	n, err := o.require(key)
	if err != nil {
		return nil, err
	}
	return n.array()
}

func (o object) requireString(key string) (string, error) {
	n, err := o.require(key)
	if err != nil {
		return "", err
	}
	return n.asString()
}

func (o object) optionalString(key, fallback string) (string, error) {
	n, ok := o.lookup(key)
	if !ok {
		return fallback, nil
	}
	return n.asString()
}

func (o object) requireInt(key string) (int, error) {
	n, err := o.require(key)
	if err != nil {
		return 0, err
	}
	return n.asInt()
}

func (o object) optionalInt(key string, fallback int) (int, error) {
	n, ok := o.lookup(key)
	if !ok {
		return fallback, nil
	}
	return n.asInt()
}

func (o object) requireFloat(key string) (float64, error) {
	n, err := o.require(key)
	if err != nil {
		return 0, err
	}
	return n.asFloat()
}

func (o object) requireProbability(key string) (float64, error) {
	n, err := o.require(key)
	if err != nil {
		return 0, err
	}
	v, err := n.asFloat()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 100 {
		return 0, &DecodeError{Path: n.path, Reason: fmt.Sprintf("probability %v outside [0,100]", v)}
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
