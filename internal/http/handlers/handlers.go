package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/logging"
	"github.com/preston-bernstein/winprob-viewer/internal/session"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
	"github.com/preston-bernstein/winprob-viewer/internal/viewer"
)

const (
	maxEventBody = 4 << 10
	maxPageDays  = 366
)

// Viewer is the session surface the handlers drive.
type Viewer interface {
	Dispatch(ev viewer.Event) error
	Snapshot() viewer.View
	Status() session.Status
	Game(gamePk int) (games.Game, bool)
	FindGame(team string) (games.Game, bool)
	Subscribe() (string, <-chan viewer.View)
	Unsubscribe(id string)
}

// Handler wires HTTP routes to the viewer session.
type Handler struct {
	viewer    Viewer
	logger    *slog.Logger
	heartbeat time.Duration
}

// NewHandler constructs a Handler with defaults.
func NewHandler(v Viewer, logger *slog.Logger) *Handler {
	return &Handler{
		viewer:    v,
		logger:    logger,
		heartbeat: defaultHeartbeat,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the session loop is accepting events.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.viewer == nil || !h.viewer.Status().Running {
		writeError(w, r, nethttp.StatusServiceUnavailable, "session not running", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// View returns the current render snapshot.
func (h *Handler) View(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.viewer.Snapshot(), h.logger)
}

type dateRequest struct {
	Date string `json:"date"`
}

// SelectDate switches the viewer to another day.
func (h *Handler) SelectDate(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body dateRequest
	if !h.decode(w, r, &body) {
		return
	}
	if _, err := timeutil.ParseDate(body.Date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}
	h.dispatch(w, r, viewer.SelectDate{Date: body.Date})
}

type pageRequest struct {
	Days int `json:"days"`
}

// PageDate moves the current date forward or back.
func (h *Handler) PageDate(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body pageRequest
	if !h.decode(w, r, &body) {
		return
	}
	if body.Days == 0 || body.Days > maxPageDays || body.Days < -maxPageDays {
		writeError(w, r, nethttp.StatusBadRequest, "days must be a non-zero offset within one year", h.logger)
		return
	}
	h.dispatch(w, r, viewer.PageDate{Days: body.Days})
}

type gameRequest struct {
	GamePk int    `json:"gamePk"`
	Team   string `json:"team"`
}

// SelectGame picks a game by gamePk or by a team name from the loaded schedule.
func (h *Handler) SelectGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body gameRequest
	if !h.decode(w, r, &body) {
		return
	}

	var (
		g  games.Game
		ok bool
	)
	switch {
	case body.GamePk > 0:
		g, ok = h.viewer.Game(body.GamePk)
	case body.Team != "":
		g, ok = h.viewer.FindGame(body.Team)
	default:
		writeError(w, r, nethttp.StatusBadRequest, "gamePk or team is required", h.logger)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not in the loaded schedule", h.logger)
		return
	}
	h.dispatch(w, r, viewer.SelectGame{Game: g})
}

// Refresh reloads the selected game's play log.
func (h *Handler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.dispatch(w, r, viewer.RefreshSelectedGame{})
}

type hoverRequest struct {
	Index *int `json:"index"`
}

// Hover points at a 1-based series index.
func (h *Handler) Hover(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body hoverRequest
	if !h.decode(w, r, &body) {
		return
	}
	if body.Index == nil {
		if raw := r.URL.Query().Get("index"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				body.Index = &n
			}
		}
	}
	if body.Index == nil || *body.Index < 1 {
		writeError(w, r, nethttp.StatusBadRequest, "index must be a positive integer", h.logger)
		return
	}
	h.dispatch(w, r, viewer.Hover{Index: *body.Index})
}

// Unhover clears the hover reference.
func (h *Handler) Unhover(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.dispatch(w, r, viewer.Unhover{})
}

// decode reads an optional JSON body. An empty body leaves dest untouched.
func (h *Handler) decode(w nethttp.ResponseWriter, r *nethttp.Request, dest any) bool {
	if r.Body == nil {
		return true
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxEventBody))
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid json body", h.logger)
		return false
	}
	return true
}

func (h *Handler) dispatch(w nethttp.ResponseWriter, r *nethttp.Request, ev viewer.Event) {
	logger := loggerFromContext(r, h.logger)
	if err := h.viewer.Dispatch(ev); err != nil {
		logging.Warn(logger, "event rejected", logging.FieldEvent, ev.Name(), "error", err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "session not running", h.logger)
		return
	}
	logging.Info(logger, "event accepted", logging.FieldEvent, ev.Name())
	writeJSON(w, nethttp.StatusAccepted, map[string]string{"status": "accepted", "event": ev.Name()}, h.logger)
}
