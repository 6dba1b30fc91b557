package server

import (
	"context"
	"io"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/logging"
)

const (
	// hubInboxSize bounds the number of pending render events.
	hubInboxSize = 1024
	// clientBufferSize bounds the events queued for one browser. A client
	// that falls further behind is disconnected.
	clientBufferSize = 256
)

// Event is one render instruction pushed to browsers.
type Event struct {
	Type       string       `json:"type"`
	Generation uint64       `json:"generation"`
	Size       int          `json:"size,omitempty"`
	Cells      [][]string   `json:"cells,omitempty"`
	Updates    []CellValue  `json:"updates,omitempty"`
	Kind       string       `json:"kind,omitempty"`
	Coords     []grid.Coord `json:"coords,omitempty"`
	Touched    []grid.Coord `json:"touched,omitempty"`
	Matched    []grid.Coord `json:"matched,omitempty"`
}

// CellValue is the rendered value of one cell in a "cells" event.
type CellValue struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// resetEvent converts a snapshot into a full redraw.
func resetEvent(s game.Snapshot) Event {
	cells := make([][]string, len(s.Cells))
	for r, row := range s.Cells {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			cells[r][c] = cell.String()
		}
	}
	return Event{
		Type:       "reset",
		Generation: s.Generation,
		Size:       s.Size,
		Cells:      cells,
		Touched:    s.Touched,
		Matched:    s.Matched,
	}
}

// clientCommand is what a browser may send over the socket.
type clientCommand struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Size string `json:"size"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

type hubMsg struct {
	register   *client
	unregister *client
	target     *client
	event      Event
}

// Hub fans render events out to every connected browser. It implements
// game.Surface; its methods only enqueue, so they never block on a slow
// browser while the game lock is held.
type Hub struct {
	inbox   chan hubMsg
	done    chan struct{}
	clients map[*client]struct{}
	logger  logging.Logger
}

// NewHub creates an idle hub. Call Run to start delivering events.
func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Hub{
		inbox:   make(chan hubMsg, hubInboxSize),
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) post(m hubMsg) {
	select {
	case h.inbox <- m:
	case <-h.done:
	}
}

// Reset implements game.Surface.
func (h *Hub) Reset(snapshot game.Snapshot) {
	h.post(hubMsg{event: resetEvent(snapshot)})
}

// SetCells implements game.Surface. The whole batch travels as one event so
// that a click on a large grid costs each browser a single queue slot.
func (h *Hub) SetCells(updates []game.CellUpdate) {
	values := make([]CellValue, len(updates))
	for i, u := range updates {
		values[i] = CellValue{Row: u.Coord.Row, Col: u.Coord.Col, Value: u.Cell.String()}
	}
	h.post(hubMsg{event: Event{Type: "cells", Updates: values}})
}

// Highlight implements game.Surface.
func (h *Hub) Highlight(kind game.HighlightKind, coords []grid.Coord, generation uint64) {
	h.post(hubMsg{event: Event{Type: "highlight", Kind: kind.String(), Coords: coords, Generation: generation}})
}

// Unhighlight implements game.Surface.
func (h *Hub) Unhighlight(kind game.HighlightKind, coords []grid.Coord, generation uint64) {
	h.post(hubMsg{event: Event{Type: "unhighlight", Kind: kind.String(), Coords: coords, Generation: generation}})
}

// Run delivers events until ctx is canceled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return nil
		case m := <-h.inbox:
			h.handle(m)
		}
	}
}

func (h *Hub) handle(m hubMsg) {
	switch {
	case m.register != nil:
		h.clients[m.register] = struct{}{}
		h.logger.Debug("browser connected", logging.String("client", m.register.id), logging.Int("clients", len(h.clients)))
	case m.unregister != nil:
		if _, ok := h.clients[m.unregister]; ok {
			h.drop(m.unregister)
			h.logger.Debug("browser disconnected", logging.String("client", m.unregister.id), logging.Int("clients", len(h.clients)))
		}
	case m.target != nil:
		if _, ok := h.clients[m.target]; ok {
			h.deliver(m.target, m.event)
		}
	default:
		for c := range h.clients {
			h.deliver(c, m.event)
		}
	}
}

func (h *Hub) deliver(c *client, ev Event) {
	select {
	case c.send <- ev:
	default:
		h.logger.Info("dropping slow browser", logging.String("client", c.id))
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, clientBufferSize),
	}
}

// serveClient registers conn, sends it the current grid, and relays the
// commands it sends until the socket closes.
func (s *Server) serveClient(conn *websocket.Conn) {
	c := newClient(conn)
	s.hub.post(hubMsg{register: c})
	// The snapshot is queued under the game lock so that it is ordered
	// before any later render event.
	s.game.Sync(func(snap game.Snapshot) {
		s.hub.post(hubMsg{target: c, event: resetEvent(snap)})
	})

	go s.writeClient(c)
	defer s.hub.post(hubMsg{unregister: c})

	for {
		var cmd clientCommand
		err := websocket.JSON.Receive(conn, &cmd)
		if err == io.EOF {
			return
		}
		if err != nil {
			s.logger.Debug("websocket receive failed", logging.String("client", c.id), logging.Err(err))
			return
		}
		s.applyCommand(conn.Request().Context(), cmd)
	}
}

func (s *Server) applyCommand(ctx context.Context, cmd clientCommand) {
	switch cmd.Type {
	case "click":
		if _, err := s.game.Click(ctx, cmd.Row, cmd.Col); err != nil {
			s.logger.Debug("websocket click rejected", logging.Err(err))
		}
	case "size":
		if err := s.game.Resize(cmd.Size); err != nil {
			s.logger.Debug("websocket resize rejected", logging.Err(err))
		}
	default:
		s.logger.Debug("unknown websocket command", logging.String("type", cmd.Type))
	}
}

func (s *Server) writeClient(c *client) {
	defer c.conn.Close()
	for ev := range c.send {
		if err := websocket.JSON.Send(c.conn, ev); err != nil {
			s.logger.Debug("websocket send failed", logging.String("client", c.id), logging.Err(err))
			return
		}
	}
}
