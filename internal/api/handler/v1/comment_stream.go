package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/service"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
	streamSendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventGetter interface {
	Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error)
}

type streamClient struct {
	conn    *websocket.Conn
	send    chan []byte
	eventID uint
}

// StreamMessage is what listeners of an event's comment stream receive.
type StreamMessage struct {
	Type    string         `json:"type"`
	Comment domain.Comment `json:"comment"`
}

// CommentStreamHandler fans new comments out to the websocket listeners of their event.
// Run must be running for listeners to be registered and messages delivered.
type CommentStreamHandler struct {
	events     EventGetter
	clients    map[uint]map[*streamClient]struct{}
	broadcast  chan domain.Comment
	register   chan *streamClient
	unregister chan *streamClient
	done       chan struct{}
}

func NewCommentStreamHandler(events EventGetter) *CommentStreamHandler {
	return &CommentStreamHandler{
		events:     events,
		clients:    make(map[uint]map[*streamClient]struct{}),
		broadcast:  make(chan domain.Comment, 256),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
		done:       make(chan struct{}),
	}
}

func (h *CommentStreamHandler) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, listeners := range h.clients {
				for client := range listeners {
					close(client.send)
				}
			}
			h.clients = map[uint]map[*streamClient]struct{}{}
			return
		case client := <-h.register:
			if h.clients[client.eventID] == nil {
				h.clients[client.eventID] = make(map[*streamClient]struct{})
			}
			h.clients[client.eventID][client] = struct{}{}
		case client := <-h.unregister:
			h.remove(client)
		case comment := <-h.broadcast:
			h.deliver(comment)
		}
	}
}

func (h *CommentStreamHandler) remove(client *streamClient) {
	listeners := h.clients[client.eventID]
	if _, ok := listeners[client]; !ok {
		return
	}

	delete(listeners, client)
	close(client.send)
	if len(listeners) == 0 {
		delete(h.clients, client.eventID)
	}
}

func (h *CommentStreamHandler) deliver(comment domain.Comment) {
	listeners := h.clients[comment.EventID]
	if len(listeners) == 0 {
		return
	}

	message, err := json.Marshal(StreamMessage{Type: "comment", Comment: comment})
	if err != nil {
		zap.L().Error("failed to encode comment", zap.Uint("comment_id", comment.ID), zap.Error(err))
		return
	}

	for client := range listeners {
		select {
		case client.send <- message:
		default:
			// Slow listener.
			h.remove(client)
		}
	}
}

// Publish queues comment for its event's listeners. It never blocks; comments are
// dropped when the queue is full.
func (h *CommentStreamHandler) Publish(comment domain.Comment) {
	select {
	case h.broadcast <- comment:
	default:
		zap.L().Warn("comment stream queue full, dropping comment", zap.Uint("comment_id", comment.ID))
	}
}

// HandleStream godoc
// @Summary      Stream new comments of an event
// @Description  Upgrades to a websocket that receives {"type":"comment","comment":{...}} messages.
// @Description  Browsers may pass the access token as the access_token query parameter.
// @Tags         comments
// @Param        eventRef  path  string  true  "Event ID or slug"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventRef}/comments/stream [get]
func (h *CommentStreamHandler) HandleStream(ctx *gin.Context) {
	event, err := h.events.Get(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "reference", ctx.Param("eventRef")))
			return
		}

		err = fmt.Errorf("v1.HandleStream -> h.events.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &streamClient{
		conn:    conn,
		send:    make(chan []byte, streamSendBuffer),
		eventID: event.ID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the connection closing; listeners have nothing to send.
func (c *streamClient) readPump(h *CommentStreamHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("comment stream closed", zap.Uint("event_id", c.eventID), zap.Error(err))
			}
			return
		}
	}
}
