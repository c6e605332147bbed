package handler

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prepdex/prepdex-backend/internal/middleware"
	"github.com/prepdex/prepdex-backend/internal/service"
	"github.com/prepdex/prepdex-backend/internal/session"
	ws "github.com/prepdex/prepdex-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams session ticks and the terminal event to the
// client, and accepts answer writes on the same connection.
type WSHandler struct {
	sessionService *service.SessionService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessionService *service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/sessions/:id/stream
// Pushes tick and ended events for the session; answer actions are
// applied to the current question.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	sess, events, err := h.sessionService.Subscribe(sessionID, claims.DeviceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sess.Unsubscribe(events)
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	defer sess.Unsubscribe(events)

	wsLog := h.log.With().
		Str("device_id", claims.DeviceID).
		Str("session_id", sessionID.String()).
		Logger()

	wsLog.Info().Msg("Device connected")

	// gorilla connections allow a single concurrent writer; the event
	// forwarder and the read loop share this mutex.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			switch ev.Type {
			case session.EventTick:
				if err := write(ws.TickResponse{Event: ws.EventTick, RemainingSeconds: ev.RemainingSeconds}); err != nil {
					return
				}
			case session.EventEnded:
				write(ws.EndedResponse{Event: ws.EventEnded, Reason: string(ev.Reason)})
				return
			}
		}
	}()

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			write(ws.PongResponse{Event: ws.EventPong})
		case ws.ActionAnswer:
			if _, err := h.sessionService.SelectAnswer(sessionID, claims.DeviceID, msg.QID, msg.Answer); err != nil {
				writeMu.Lock()
				ws.WriteError(conn, err.Error())
				writeMu.Unlock()
				continue
			}
			write(ws.SavedResponse{Event: ws.EventSaved, QID: msg.QID})
		default:
			writeMu.Lock()
			ws.WriteError(conn, "unknown action")
			writeMu.Unlock()
		}
	}

	sess.Unsubscribe(events)
	<-done
	wsLog.Info().Msg("Device disconnected")
}
