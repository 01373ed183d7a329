package handlers

import (
	"fmt"
	"net/http"
	"time"

	"mogilev-express/internal/broadcast"
	"mogilev-express/internal/logx"
)

const streamHeartbeat = 25 * time.Second

// StreamHandler pushes new-order events to connected couriers over SSE.
type StreamHandler struct {
	source    streamSource
	logger    logx.Logger
	heartbeat time.Duration
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(logger logx.Logger, source streamSource) *StreamHandler {
	return &StreamHandler{source: source, logger: logger, heartbeat: streamHeartbeat}
}

// Stream handles GET /api/orders/stream. The connection stays open
// until the client goes away or the server shuts down.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(h.logger, w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, stop, err := h.source.Subscribe(r.Context())
	if err != nil {
		h.logger.Error("stream subscribe failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("stream opened", logx.String("req_id", reqID(r.Context())))

	// пинг держит соединение живым через прокси
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("stream closed", logx.String("req_id", reqID(r.Context())))
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case payload, open := <-events:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", broadcast.EventName, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
