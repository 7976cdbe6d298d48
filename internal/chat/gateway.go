package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Frame is the wire format spoken over the gateway. Outbound frames carry
// channel text ("say"), countdown edits ("edit", keyed by message id), and
// private whispers ("dm"). Inbound frames only need Text; the sender is the
// connection's registered name.
type Frame struct {
	Type string `json:"type"`
	ID   int64  `json:"id,omitempty"`
	To   string `json:"to,omitempty"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

// Gateway is a WebSocket chat bridge: every connected client shares one
// channel, and what they type becomes the game's inbound message stream.
type Gateway struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.RWMutex
	clients map[string]*client

	inbound chan Message
	nextID  atomic.Int64
}

type client struct {
	name string
	send chan Frame
	conn *websocket.Conn
}

// NewGateway creates a gateway listening on addr
func NewGateway(addr string, logger *log.Logger) *Gateway {
	return &Gateway{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  logger.WithPrefix("gateway"),
		clients: make(map[string]*client),
		inbound: make(chan Message, 64),
	}
}

// Messages returns the inbound message stream for the game core
func (g *Gateway) Messages() <-chan Message {
	return g.inbound
}

// Run serves the gateway until the context is cancelled
func (g *Gateway) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	srv := &http.Server{Addr: g.addr, Handler: mux}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		g.logger.Info("listening", "addr", g.addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// WaitForPlayers blocks until n clients are connected or the context ends
func (g *Gateway) WaitForPlayers(ctx context.Context, n int) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		g.mu.RLock()
		connected := len(g.clients)
		g.mu.RUnlock()
		if connected >= n {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// PlayerNames returns the names of the currently connected clients
func (g *Gateway) PlayerNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.clients))
	for name := range g.clients {
		names = append(names, name)
	}
	return names
}

func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("upgrade failed", "error", err)
		return
	}

	c := &client{name: name, send: make(chan Frame, 64), conn: conn}

	g.mu.Lock()
	if _, taken := g.clients[name]; taken {
		g.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "name in use"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	g.clients[name] = c
	g.mu.Unlock()

	g.logger.Info("client connected", "name", name)
	go g.writePump(c)
	go g.readPump(c)
}

func (g *Gateway) readPump(c *client) {
	defer g.dropClient(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			g.logger.Debug("discarding malformed frame", "name", c.name, "error", err)
			continue
		}
		g.inbound <- Message{SenderID: c.name, Text: frame.Text}
	}
}

func (g *Gateway) writePump(c *client) {
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func (g *Gateway) dropClient(c *client) {
	g.mu.Lock()
	if g.clients[c.name] == c {
		delete(g.clients, c.name)
		close(c.send)
	}
	g.mu.Unlock()
	c.conn.Close()
	g.logger.Info("client disconnected", "name", c.name)
}

func (g *Gateway) broadcast(frame Frame) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.clients {
		select {
		case c.send <- frame:
		default:
			// Slow reader; the frame is dropped rather than stalling the game.
		}
	}
}

// Send broadcasts channel text to every client and returns a handle that can
// edit the message in place.
func (g *Gateway) Send(text string) EditableMessage {
	id := g.nextID.Add(1)
	g.broadcast(Frame{Type: "say", ID: id, Text: text})
	return &gatewayMessage{gateway: g, id: id}
}

type gatewayMessage struct {
	gateway *Gateway
	id      int64
}

func (m *gatewayMessage) Update(text string) {
	m.gateway.broadcast(Frame{Type: "edit", ID: m.id, Text: text})
}

// PlayerChannel returns a private channel to one connected client
func (g *Gateway) PlayerChannel(name string) PlayerChannel {
	return &gatewayWhisper{gateway: g, name: name}
}

type gatewayWhisper struct {
	gateway *Gateway
	name    string
}

func (w *gatewayWhisper) Send(text string) {
	w.gateway.mu.RLock()
	c, ok := w.gateway.clients[w.name]
	w.gateway.mu.RUnlock()
	if !ok {
		w.gateway.logger.Debug("whisper to disconnected player dropped", "name", w.name)
		return
	}
	select {
	case c.send <- Frame{Type: "dm", To: w.name, Text: text}:
	default:
	}
}
