package server

import (
	"ctchen222/Block-Battle/internal/api/response"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/hub"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/internal/repository"
	"ctchen222/Block-Battle/pkg/proto"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub      *hub.Hub
	sessions repository.SessionRepository
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

func NewServer(h *hub.Hub, sessions repository.SessionRepository) *Server {
	s := &Server{
		hub:      h,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.RegisterHandlers()
	return s
}

// Engine returns the HTTP handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterHandlers() {
	s.engine.GET("/ws", s.handleWebSocket)
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	v1.GET("/events/types", s.handleEventTypes)
	v1.POST("/events/decode", s.handleDecode)
}

// handleWebSocket resolves the session and room, upgrades the connection and
// passes a registration request to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	roomID := c.Query("roomId")
	sessionID := game.SessionID(c.Query("sessionId"))

	if sessionID != "" {
		storedRoom, status, err := s.sessions.FindForReconnection(ctx, sessionID)
		if err != nil {
			slog.WarnContext(ctx, "Could not look up session for reconnection", "session.id", sessionID, "error", err)
			span.RecordError(err)
		} else if storedRoom != "" {
			slog.InfoContext(ctx, "Reconnecting session", "session.id", sessionID, "room.id", storedRoom, "session.status", status)
			if roomID == "" {
				roomID = storedRoom
			}
		}
	} else {
		sessionID = game.SessionID(uuid.New().String())
	}
	span.SetAttributes(attribute.String("session.id", string(sessionID)), attribute.String("room.id", roomID))

	if roomID == "" {
		span.SetStatus(codes.Error, "Missing room id")
		response.ErrorResponse(c, http.StatusBadRequest, "roomId is required")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	p := player.NewPlayer(sessionID, conn)
	p.Username = c.Query("username")
	p.IsBot, _ = strconv.ParseBool(c.Query("isBot"))
	s.hub.Register() <- &types.RegistrationRequest{
		Player: p,
		RoomID: roomID,
		Ctx:    ctx,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{
		"status": "ok",
		"rooms":  s.hub.RoomCount(),
	})
}

// handleEventTypes lists every event type with its payload wire keys.
func (s *Server) handleEventTypes(c *gin.Context) {
	eventTypes := proto.EventTypes()
	list := make([]any, 0, len(eventTypes))
	for _, t := range eventTypes {
		fields := proto.PayloadFields(t)
		if fields == nil {
			fields = []string{}
		}
		list = append(list, gin.H{"type": t, "fields": fields})
	}
	response.SuccessResponseList(c, list)
}

// handleDecode checks a document against the event schema.
func (s *Server) handleDecode(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleDecode")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, player.MaxDocumentSize))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read body")
		response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "document too large")
		return
	}

	ev, err := proto.Decode(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Document rejected")
		slog.DebugContext(ctx, "Document rejected", "error", err)

		detail := response.NewError(err.Error())
		var schemaErr *proto.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			detail.Kind = "schema_mismatch"
			detail.Type = schemaErr.Type
			detail.Field = schemaErr.Field
			response.ErrorResponseDetail(c, http.StatusUnprocessableEntity, detail)
		default:
			detail.Kind = "malformed_document"
			response.ErrorResponseDetail(c, http.StatusBadRequest, detail)
		}
		return
	}

	span.SetAttributes(attribute.String("event.type", string(ev.Type())))
	response.SuccessResponse(c, gin.H{"type": ev.Type()})
}
