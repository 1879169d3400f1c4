// Package preview broadcasts live renders of path data to every client
// editing the same path over a websocket.
package preview

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/svgpath/internal/engine"
	"github.com/inamate/svgpath/internal/pathdata"
)

// RenderFunc parses and replays path data.
type RenderFunc func(d string) (*engine.PathRender, error)

// LoadFunc returns the stored path data for a path ID. It seeds a room when
// its first client joins.
type LoadFunc func(pathID string) (string, error)

type Room struct {
	pathID   string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	// last successfully rendered edit, sent to clients as they join
	latest *RenderedPayload
	seq    int64
}

func NewRoom(pathID string) *Room {
	return &Room{
		pathID:   pathID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
	}
}

// join is a pending registration. seed is the stored render for the room,
// loaded by the registering goroutine when the room did not exist yet.
type join struct {
	client *Client
	seed   *RenderedPayload
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // pathID -> room
	register   chan join
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	render    RenderFunc
	load      LoadFunc
	maxLength int
}

// NewHub returns a hub that renders edits with render. load may be nil.
// Edits longer than maxLength bytes are rejected; maxLength <= 0 disables
// the check.
func NewHub(render RenderFunc, load LoadFunc, maxLength int) *Hub {
	if render == nil {
		render = engine.RenderPath
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan join),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		render:     render,
		load:       load,
		maxLength:  maxLength,
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case j := <-h.register:
			h.addClient(j.client, j.seed)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and closes every client's send queue. It blocks until Run
// has returned.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

// Register adds client to its room. It returns false once the hub has stopped.
// The stored data for a new room is loaded on the caller's goroutine.
func (h *Hub) Register(client *Client) bool {
	select {
	case <-h.stop:
		return false
	default:
	}

	var seed *RenderedPayload
	if !h.hasRoom(client.PathID) {
		seed = h.seed(client.PathID)
	}
	select {
	case h.register <- join{client: client, seed: seed}:
		return true
	case <-h.stop:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

func (h *Hub) hasRoom(pathID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[pathID]
	return ok
}

// addClient adds client to its room, creating the room from seed when it
// does not exist. A seed for a room that already exists is discarded.
func (h *Hub) addClient(client *Client, seed *RenderedPayload) {
	h.mu.Lock()
	room, ok := h.rooms[client.PathID]
	if !ok {
		room = NewRoom(client.PathID)
		room.latest = seed
		h.rooms[client.PathID] = room
	}
	room.clients[client.ClientID] = client
	latest := room.latest
	seq := room.seq
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{ClientID: client.ClientID, UserID: client.UserID}))
	client.Send(room.presence.StateMessage())
	if latest != nil {
		msg := newMessage(TypePathRendered, latest)
		msg.PathID = client.PathID
		msg.Seq = seq
		client.Send(msg)
	}

	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID = client.UserID
	joinMsg.ClientID = client.ClientID
	h.broadcastToRoom(client.PathID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "path", client.PathID)
}

// seed renders the stored data for a new room. Failures leave the room empty.
func (h *Hub) seed(pathID string) *RenderedPayload {
	if h.load == nil {
		return nil
	}
	d, err := h.load(pathID)
	if err != nil {
		slog.Debug("load path for preview", "path", pathID, "error", err)
		return nil
	}
	r, err := h.render(d)
	if err != nil {
		slog.Warn("stored path does not render", "path", pathID, "error", err)
		return nil
	}
	return renderedPayload(d, r)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.PathID]
	if !ok || room.clients[client.ClientID] != client {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.PathID)
	}
	h.mu.Unlock()

	leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.UserID})
	leaveMsg.UserID = client.UserID
	leaveMsg.ClientID = client.ClientID
	h.broadcastToRoom(client.PathID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "path", client.PathID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			c.close()
		}
		delete(h.rooms, id)
	}
	slog.Info("preview hub stopped")
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePathEdit:
		h.handleEdit(sender, msg)
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: fmt.Sprintf("unknown message type %q", msg.Type)}))
	}
}

func (h *Hub) handleEdit(sender *Client, msg *Message) {
	var edit EditPayload
	if err := json.Unmarshal(msg.Payload, &edit); err != nil {
		slog.Warn("invalid edit payload", "error", err)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: "invalid edit payload"}))
		return
	}

	if h.maxLength > 0 && len(edit.D) > h.maxLength {
		h.sendPathError(sender, msg.Seq, PathErrorPayload{
			Message: fmt.Sprintf("path data too long: %d bytes exceeds %d", len(edit.D), h.maxLength),
		})
		return
	}

	r, err := h.render(edit.D)
	if err != nil {
		out := PathErrorPayload{Message: err.Error()}
		var perr *pathdata.ParseError
		if errors.As(err, &perr) {
			out.Remaining = perr.Remaining
			out.Offset = perr.Offset
		}
		h.sendPathError(sender, msg.Seq, out)
		return
	}

	payload := renderedPayload(edit.D, r)

	h.mu.Lock()
	room, ok := h.rooms[sender.PathID]
	if !ok {
		h.mu.Unlock()
		return
	}
	room.latest = payload
	room.seq++
	seq := room.seq
	h.mu.Unlock()

	out := newMessage(TypePathRendered, payload)
	out.PathID = sender.PathID
	out.UserID = sender.UserID
	out.ClientID = sender.ClientID
	out.Seq = seq
	h.broadcastToRoom(sender.PathID, out, "")
}

func (h *Hub) sendPathError(sender *Client, seq int64, payload PathErrorPayload) {
	out := newMessage(TypePathError, payload)
	out.PathID = sender.PathID
	out.Seq = seq
	sender.Send(out)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.PathID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.ClientID, &presence)

	out := newMessage(TypePresenceUpdate, presence)
	out.UserID = sender.UserID
	out.ClientID = sender.ClientID
	h.broadcastToRoom(sender.PathID, out, sender.ClientID)
}

func (h *Hub) broadcastToRoom(pathID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[pathID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func renderedPayload(d string, r *engine.PathRender) *RenderedPayload {
	return &RenderedPayload{
		D:      d,
		Ops:    r.Ops,
		Bounds: r.Bounds,
		Counts: r.Commands.Counts(),
	}
}
