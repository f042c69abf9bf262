package http

import (
	"net/http"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// the bearer token already authenticated the caller; cross-origin
	// browser access is not a concern for a native/TUI client
	CheckOrigin: func(r *http.Request) bool { return true },
}

// realtime upgrades the connection to a websocket and runs the subscription
// loop. The client sends subscribe/unsubscribe frames; the hub pushes change
// events for every scope the connection holds until the peer goes away.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(conn)
	defer h.hub.Unregister(client)

	for {
		var frame models.SubscribeFrame
		if err = conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Err(err).Msg("realtime connection closed unexpectedly")
			}
			return
		}

		switch frame.Op {
		case models.OpSubscribe:
			h.hub.Subscribe(client, frame)
		case models.OpUnsubscribe:
			h.hub.Unsubscribe(client, frame.Purpose)
		default:
			log.Warn().Str("op", frame.Op).Msg("unknown realtime frame op")
		}
	}
}
