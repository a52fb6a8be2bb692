// Package gateway is the realtime messaging endpoint: one websocket per
// client, per-conversation broadcast groups, persist-then-broadcast
// delivery. A connection authenticates once at upgrade time; every join is
// authorized against the conversation's participant set.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/internal/platform/auth"
)

const (
	eventJoin        = "join"
	eventLeave       = "leave"
	eventSendMessage = "send-message"

	eventReceiveMessage = "receive-message"
	eventJoined         = "joined"
	eventError          = "error"
)

const handleTimeout = 10 * time.Second

type envelope struct {
	Event          string `json:"event"`
	ConversationID string `json:"conversationId,omitempty"`
	Content        string `json:"content,omitempty"`
}

type messagePayload struct {
	Event          string    `json:"event"`
	MessageID      string    `json:"messageId"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

type errorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

type ackPayload struct {
	Event          string `json:"event"`
	ConversationID string `json:"conversationId"`
}

type Gateway struct {
	hub           *Hub
	conversations *services.ConversationService
	tokens        *auth.TokenManager
	logger        *slog.Logger
	upgrader      websocket.Upgrader
}

func New(hub *Hub, conversations *services.ConversationService, tokens *auth.TokenManager, logger *slog.Logger) *Gateway {
	return &Gateway{
		hub:           hub,
		conversations: conversations,
		tokens:        tokens,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the connection. The token travels in the "token" query
// parameter or an Authorization bearer header.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}

	claims, err := g.tokens.ParseValidate(token)
	if err != nil {
		http.Error(w, `{"error": "invalid connection token"}`, http.StatusUnauthorized)
		return
	}

	identity, err := claims.Subject()
	if err != nil {
		http.Error(w, `{"error": "invalid connection token"}`, http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := newClient(g.hub, conn, identity, g.handle)
	go client.writePump()
	client.readPump()
}

func (g *Gateway) handle(c *Client, env envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	switch env.Event {
	case eventJoin:
		g.handleJoin(ctx, c, env)
	case eventLeave:
		g.handleLeave(c, env)
	case eventSendMessage:
		g.handleSend(ctx, c, env)
	default:
		g.sendError(c, "unknown event: "+env.Event)
	}
}

func (g *Gateway) handleJoin(ctx context.Context, c *Client, env envelope) {
	conversationID, err := uuid.Parse(env.ConversationID)
	if err != nil {
		g.sendError(c, "invalid conversation id")
		return
	}

	conv, err := g.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		g.sendError(c, "conversation not found")
		return
	}

	if !conv.HasParticipant(c.identity) {
		g.sendError(c, "not a participant of this conversation")
		return
	}

	g.hub.register <- subscription{client: c, conversationID: conversationID}

	payload, _ := json.Marshal(ackPayload{Event: eventJoined, ConversationID: conversationID.String()})
	c.enqueue(payload)
}

func (g *Gateway) handleLeave(c *Client, env envelope) {
	conversationID, err := uuid.Parse(env.ConversationID)
	if err != nil {
		g.sendError(c, "invalid conversation id")
		return
	}
	g.hub.unregister <- subscription{client: c, conversationID: conversationID}
}

func (g *Gateway) handleSend(ctx context.Context, c *Client, env envelope) {
	conversationID, err := uuid.Parse(env.ConversationID)
	if err != nil {
		g.sendError(c, "invalid conversation id")
		return
	}

	msg, err := g.conversations.AppendMessage(ctx, conversationID, c.identity, env.Content)
	if err != nil {
		// Not persisted, so nothing is broadcast; the sender gets an
		// explicit failure rather than silence.
		g.logger.Error("message persistence failed",
			"conversation", conversationID, "sender", c.identity, "err", err)
		g.sendError(c, "message could not be delivered")
		return
	}

	payload, err := json.Marshal(messagePayload{
		Event:          eventReceiveMessage,
		MessageID:      msg.ID.String(),
		ConversationID: msg.ConversationID.String(),
		SenderID:       msg.SenderID.String(),
		Content:        msg.Content,
		Timestamp:      msg.Timestamp,
	})
	if err != nil {
		g.sendError(c, "message could not be delivered")
		return
	}

	// The sender receives the broadcast too and reconciles against the
	// server-assigned timestamp.
	g.hub.broadcast <- outbound{conversationID: conversationID, payload: payload}
}

func (g *Gateway) sendError(c *Client, message string) {
	payload, _ := json.Marshal(errorPayload{Event: eventError, Message: message})
	c.enqueue(payload)
}
