package hostbridge

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"restock-engine/internal/host"
	"restock-engine/internal/logger"
)

// frame is the wire format of the bridge protocol. Requests and
// responses carry a correlation id and an op; host-pushed events carry
// an event name instead.
type frame struct {
	ID    uint64          `json:"id,omitempty"`
	Op    string          `json:"op,omitempty"`
	Event string          `json:"event,omitempty"`
	Body  json.RawMessage `json:"body,omitempty"`
	Error string          `json:"error,omitempty"`
}

// EventHandlers receives host-pushed events. The host delivers one
// event at a time; handlers run on the read loop and must not make
// bridge requests themselves (start a goroutine for that).
type EventHandlers struct {
	OnSale           func(host.SaleEvent)
	OnDayEnd         func()
	OnDayStart       func()
	OnSaveRequested  func()
	OnRestockTrigger func()
}

// Client is a WebSocket client for the game-side bridge endpoint. It
// implements every host service contract over a request/response
// protocol with pushed events.
type Client struct {
	mu   sync.RWMutex
	conn *websocket.Conn

	url      string
	timeout  time.Duration
	log      *logger.Logger
	handlers EventHandlers

	nextRequestID uint64
	pending       map[uint64]chan frame

	closed        bool
	heartbeatStop chan struct{}
}
