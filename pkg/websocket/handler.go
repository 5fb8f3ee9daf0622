package websocket

import (
	"time"

	"github.com/gin-gonic/gin"

	"gorent/internal/models"
	"gorent/internal/notify"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

type Handler struct {
	hub *Hub
	log *logger.Logger
}

func NewHandler(log *logger.Logger) *Handler {
	hub := NewHub(log)
	go hub.Run()

	return &Handler{
		hub: hub,
		log: log,
	}
}

// HandleWebSocket upgrades an authenticated request. The auth middleware has
// already resolved the session cookie; unauthenticated sockets are rejected
// before the upgrade.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}

	role, _ := c.Get("user_role")
	isAdmin := role == string(models.RoleAdmin)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("WebSocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, sessionID.(string), isAdmin)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BindQueue wires the notification queue to the hub: every show/dismiss
// event is pushed to the owning session's room, and toast dismissals arriving
// over the socket are fed back into the queue. Toasts without a session stay
// in-process.
func (h *Handler) BindQueue(queue *notify.Queue) {
	queue.Subscribe(func(ev notify.Event) {
		if ev.Toast.SessionID == "" {
			return
		}
		h.hub.SendToSession(ev.Toast.SessionID, Message{
			Type:      "toast_" + ev.Type,
			Timestamp: time.Now().Unix(),
			Data: map[string]interface{}{
				"toast_id": ev.Toast.ID,
				"kind":     string(ev.Toast.Kind),
				"message":  ev.Toast.Message,
				"duration": ev.Toast.Duration.Milliseconds(),
			},
		})
	})
	h.hub.OnDismiss(queue.Dismiss)
}

// NotifySession pushes an ad-hoc event to one session.
func (h *Handler) NotifySession(sessionID, eventType string, data map[string]interface{}) {
	h.hub.SendToSession(sessionID, Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}

// NotifyAdmins pushes dashboard updates to every connected admin.
func (h *Handler) NotifyAdmins(eventType string, data map[string]interface{}) {
	h.hub.SendToAdmins(Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
