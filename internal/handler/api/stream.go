package api

import (
	"log/slog"
	"net/http"
	"time"

	"roomserve/internal/dispatch"
	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/handler/httperr"
	"roomserve/internal/pkg/config"
	"roomserve/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type StreamHandler struct {
	registry *dispatch.Registry
	cfg      config.DispatchConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewStreamHandler(registry *dispatch.Registry, cfg config.DispatchConfig, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced at the CORS layer; tokens are already
			// required before the upgrade.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// @Summary Stream service request events
// @Description Upgrade to a websocket delivering RequestCreated and RequestUpdated events, optionally filtered by kind and department
// @Tags requests
// @Security BearerAuth
// @Param kind query string false "Filter by kind (food or housekeeping)"
// @Param department query string false "Filter by department"
// @Param token query string false "Access token (alternative to Authorization header)"
// @Success 101
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /requests/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	kind := request.Kind(c.Query("kind"))
	if kind != "" && !kind.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "Unknown kind", nil)
		return
	}
	filter := dispatch.Filter{
		Kind:       kind,
		Department: staff.Department(c.Query("department")),
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	session := h.registry.Subscribe(filter)
	defer func() {
		h.registry.Unsubscribe(session)
		_ = conn.Close()
	}()

	done := make(chan struct{})
	go h.readPump(conn, session, done)
	h.writePump(conn, session, done)
}

// readPump drains inbound frames so pings and close frames are processed.
// Subscribers send nothing meaningful; liveness comes from pong replies.
func (h *StreamHandler) readPump(conn *websocket.Conn, session *dispatch.Session, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	conn.SetPongHandler(func(string) error {
		session.Touch(time.Now())
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket read error", "session_id", session.ID(), "error", err.Error())
			}
			return
		}
	}
}

func (h *StreamHandler) writePump(conn *websocket.Conn, session *dispatch.Session, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-session.Events():
			if !ok {
				// Deregistered by the liveness sweep.
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session expired"),
					time.Now().Add(h.cfg.WriteTimeout),
				)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteJSON(env); err != nil {
				werr := errs.Mark(err, errs.ErrTransportFailure)
				h.logger.Warn("websocket write failed", "session_id", session.ID(), "error", werr.Error())
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(
				websocket.PingMessage, nil, time.Now().Add(h.cfg.WriteTimeout),
			); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
