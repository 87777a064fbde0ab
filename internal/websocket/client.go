package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
	readLimit      = 512
)

// Client is one open inventory view. A client watching a container only
// receives item events for that container; container events reach everyone.
type Client struct {
	hub       *Hub
	conn      *ws.Conn
	container string
	send      chan []byte
}

// NewClient ties conn to hub. An empty container watches every container.
func NewClient(hub *Hub, conn *ws.Conn, container string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		container: container,
		send:      make(chan []byte, sendBufferSize),
	}
}

func (c *Client) wants(msg Message) bool {
	return c.container == "" || msg.Entity != "item" || msg.Container == c.container
}

// Run blocks until the connection closes or ctx is done.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.conn.SetReadLimit(readLimit)
	go func() {
		// Push-only: anything the browser sends is discarded, and a read
		// error means the peer went away.
		for {
			if _, _, err := c.conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	err := c.deliver(ctx)
	switch {
	case err == nil:
		c.conn.Close(ws.StatusGoingAway, "")
	case ctx.Err() == nil:
		c.hub.logger.Debug("client write failed", "container", c.container, "error", err)
	}
}

// deliver writes queued messages and keepalive pings. It returns nil once
// the hub closes the send channel.
func (c *Client) deliver(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := c.write(ctx, msg); err != nil {
				return err
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
