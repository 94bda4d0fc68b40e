package handlers

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/freddyb/standup/internal/hub"
)

const writeTimeout = 5 * time.Second

// StreamHandler pushes newly posted statuses to connected browsers over a
// websocket. Each rendered fragment broadcast through the hub goes out to
// every open connection.
type StreamHandler struct {
	hub *hub.Hub
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(h *hub.Hub) *StreamHandler {
	return &StreamHandler{hub: h}
}

// Stream upgrades the connection and relays hub broadcasts until the client
// disconnects.
func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	subscriber := &hub.Subscriber{Send: make(chan []byte, 16)}
	h.hub.Register <- subscriber
	defer func() { h.hub.Unregister <- subscriber }()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-subscriber.Send:
			if !ok {
				// The hub dropped us, most likely for lagging.
				return nil
			}
			if err := writeMessage(ctx, conn, msg); err != nil {
				return nil
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, msg)
}
