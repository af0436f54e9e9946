// Package ws pushes task-change events to connected dashboards so they can
// refresh without polling. Connections fan out from a Redis pub/sub channel;
// the hub itself holds no state.
package ws

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/taskdash/taskdash/internal/server/middleware"
	redisstore "github.com/taskdash/taskdash/internal/store/redis"
)

// Hub manages WebSocket connections backed by Redis pub/sub.
type Hub struct {
	pubsub *redisstore.PubSub
}

func NewHub(pubsub *redisstore.PubSub) *Hub {
	return &Hub{pubsub: pubsub}
}

// ServeDashboard handles WebSocket connections for live dashboard refresh.
// Subscribes to the task events channel and forwards every payload to the
// client; the client refetches its role-scoped summary on receipt, so no
// scoped data ever travels over the broadcast channel itself.
func (h *Hub) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CallerFromContext(r.Context()); !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	messages, cleanup, err := h.pubsub.Subscribe(ctx, redisstore.TaskEventsChannel())
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
