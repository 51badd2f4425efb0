package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/logging"
)

const (
	defaultHeartbeat = 15 * time.Second
	viewEventName    = "view"
)

// Stream pushes a view snapshot as a server-sent event after every applied event.
func (h *Handler) Stream(w nethttp.ResponseWriter, r *nethttp.Request) {
	flusher, ok := w.(nethttp.Flusher)
	if !ok {
		writeError(w, r, nethttp.StatusInternalServerError, "streaming unsupported", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)

	// The server's WriteTimeout would otherwise end the stream.
	if err := nethttp.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, nethttp.ErrNotSupported) {
		logging.Warn(logger, "failed to clear write deadline", "error", err)
	}

	id, views := h.viewer.Subscribe()
	defer h.viewer.Unsubscribe(id)

	logging.Info(logger, "view stream opened", "subscriber", id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(nethttp.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			logging.Info(logger, "view stream closed by client", "subscriber", id)
			return
		case view, open := <-views:
			if !open {
				logging.Info(logger, "view stream ended", "subscriber", id)
				return
			}
			data, err := json.Marshal(view)
			if err != nil {
				logging.Error(logger, "failed to encode view", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", viewEventName, data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
