package hostbridge

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"restock-engine/internal/host"
	"restock-engine/internal/logger"
)

// NewClient creates a bridge client for the given endpoint
func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		url:           url,
		timeout:       timeout,
		log:           log,
		pending:       make(map[uint64]chan frame),
		heartbeatStop: make(chan struct{}),
	}
}

const heartbeatInterval = 15 * time.Second

// SetEventHandlers registers the callbacks for host-pushed events.
// Must be called before Connect.
func (c *Client) SetEventHandlers(handlers EventHandlers) {
	c.handlers = handlers
}

// Connect establishes the WebSocket connection and starts the read
// loop and heartbeat.
func (c *Client) Connect() error {
	c.log.Infof("Connecting to host bridge: %s", c.url)

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	// Each connection gets its own stop channel so a client closed and
	// reconnected keeps a live heartbeat.
	stop := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.heartbeatStop = stop
	c.mu.Unlock()

	c.log.Info("Host bridge connected")

	go c.handleMessages(conn)
	go c.startHeartbeat(stop)

	return nil
}

// Close tears the connection down
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.heartbeatStop)

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// request sends one op frame and decodes the correlated reply body
// into out. A nil out discards the reply body.
func (c *Client) request(op string, body interface{}, out interface{}) error {
	var rawBody json.RawMessage
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rawBody = data
	}

	id := atomic.AddUint64(&c.nextRequestID, 1)
	reply := make(chan frame, 1)

	c.mu.Lock()
	if c.conn == nil || c.closed {
		c.mu.Unlock()
		return fmt.Errorf("bridge not connected")
	}
	c.pending[id] = reply
	err := c.conn.WriteJSON(frame{ID: id, Op: op, Body: rawBody})
	c.mu.Unlock()

	if err != nil {
		c.dropPending(id)
		return fmt.Errorf("failed to send %s: %w", op, err)
	}

	select {
	case resp := <-reply:
		if resp.Error != "" {
			return fmt.Errorf("%s: %s", op, resp.Error)
		}
		if out != nil && len(resp.Body) > 0 {
			if err := json.Unmarshal(resp.Body, out); err != nil {
				return fmt.Errorf("failed to parse %s reply: %w", op, err)
			}
		}
		return nil
	case <-time.After(c.timeout):
		c.dropPending(id)
		return fmt.Errorf("%s: timeout waiting for reply", op)
	}
}

func (c *Client) dropPending(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// handleMessages routes incoming frames: correlated replies to their
// waiting request, event frames to the registered handlers. The loop
// is bound to the connection it was started with; a reconnect starts
// a fresh loop.
func (c *Client) handleMessages(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.mu.RLock()
			closed := c.closed
			c.mu.RUnlock()
			if !closed {
				c.log.Warnf("Bridge read error: %v", err)
			}
			return
		}

		switch {
		case f.Event != "":
			c.dispatchEvent(f)
		case f.ID != 0:
			c.mu.Lock()
			reply, ok := c.pending[f.ID]
			if ok {
				delete(c.pending, f.ID)
			}
			c.mu.Unlock()
			if ok {
				reply <- f
			}
		}
	}
}

// dispatchEvent runs the handler for one pushed event. Events arrive
// one at a time and are handled synchronously, matching the host's
// non-reentrant callback guarantee.
func (c *Client) dispatchEvent(f frame) {
	switch f.Event {
	case "sale":
		if c.handlers.OnSale == nil {
			return
		}
		var ev host.SaleEvent
		if err := json.Unmarshal(f.Body, &ev); err != nil {
			c.log.Errorf("Bad sale event payload: %v", err)
			return
		}
		c.handlers.OnSale(ev)
	case "dayEnd":
		if c.handlers.OnDayEnd != nil {
			c.handlers.OnDayEnd()
		}
	case "dayStart":
		if c.handlers.OnDayStart != nil {
			c.handlers.OnDayStart()
		}
	case "save":
		if c.handlers.OnSaveRequested != nil {
			c.handlers.OnSaveRequested()
		}
	case "restock":
		if c.handlers.OnRestockTrigger != nil {
			c.handlers.OnRestockTrigger()
		}
	default:
		c.log.Debugf("Ignoring unknown bridge event %q", f.Event)
	}
}

// startHeartbeat keeps the connection alive with periodic pings
func (c *Client) startHeartbeat(stop <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.conn == nil || c.closed {
				c.mu.Unlock()
				return
			}
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				c.log.Warnf("Heartbeat failed: %v", err)
				return
			}
		}
	}
}
