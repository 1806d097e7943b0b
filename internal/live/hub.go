package live

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

const (
	MessageStandings = "standings"

	changedBuffer = 64
	sendBuffer    = 16
)

type StandingsSource interface {
	PoolStandings(ctx context.Context, poolID uint) ([]domain.Standing, error)
}

type Message struct {
	Type      string            `json:"type"`
	PoolID    uint              `json:"pool_id"`
	Standings []domain.Standing `json:"standings"`
}

// standingsFrame is a standings payload computed off the Run loop. A nil client means every
// watcher of the pool.
type standingsFrame struct {
	poolID uint
	client *Client
	msg    []byte
}

// Hub pushes fresh pool standings to every websocket client watching that pool.
// Rooms are only mutated, and sends only happen, on the Run goroutine. Standings queries
// run in their own goroutines so a slow query never stalls other pools.
type Hub struct {
	source     StandingsSource
	logger     *zap.Logger
	rooms      map[uint]map[*Client]struct{}
	roomsMutex sync.RWMutex
	register   chan *Client
	unregister chan *Client
	changed    chan uint
	ready      chan standingsFrame
	done       chan struct{}

	// inflight and stale are owned by Run. A pool changed while its broadcast query runs
	// is queried once more when that query finishes.
	inflight map[uint]bool
	stale    map[uint]bool
}

func NewHub(source StandingsSource, logger *zap.Logger) *Hub {
	return &Hub{
		source:     source,
		logger:     logger,
		rooms:      make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changed:    make(chan uint, changedBuffer),
		ready:      make(chan standingsFrame),
		done:       make(chan struct{}),
		inflight:   make(map[uint]bool),
		stale:      make(map[uint]bool),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		case client := <-h.register:
			h.roomsMutex.Lock()
			if _, ok := h.rooms[client.poolID]; !ok {
				h.rooms[client.poolID] = make(map[*Client]struct{})
			}
			h.rooms[client.poolID][client] = struct{}{}
			h.roomsMutex.Unlock()
			h.logger.Debug("live client registered", zap.Uint("pool_id", client.poolID), zap.Uint("user_id", client.userID))

			go h.load(ctx, client.poolID, client)
		case client := <-h.unregister:
			h.remove(client)
		case poolID := <-h.changed:
			if h.Watchers(poolID) == 0 {
				continue
			}
			if h.inflight[poolID] {
				h.stale[poolID] = true
				continue
			}
			h.inflight[poolID] = true
			go h.load(ctx, poolID, nil)
		case frame := <-h.ready:
			if frame.client != nil {
				if frame.msg != nil && h.watching(frame.client) {
					h.deliver(frame.client, frame.msg)
				}
				continue
			}

			delete(h.inflight, frame.poolID)
			if frame.msg != nil {
				h.broadcast(frame.poolID, frame.msg)
			}
			if h.stale[frame.poolID] {
				delete(h.stale, frame.poolID)
				h.inflight[frame.poolID] = true
				go h.load(ctx, frame.poolID, nil)
			}
		}
	}
}

// load computes the pool's standings and hands them back to Run. A failed query yields a
// frame without payload so Run can settle its bookkeeping.
func (h *Hub) load(ctx context.Context, poolID uint, client *Client) {
	msg, _ := h.snapshot(ctx, poolID)

	select {
	case h.ready <- standingsFrame{poolID: poolID, client: client, msg: msg}:
	case <-h.done:
	}
}

// Notify queues a standings refresh for the pool. It never blocks; a full queue drops the signal.
func (h *Hub) Notify(poolID uint) {
	select {
	case h.changed <- poolID:
	default:
		h.logger.Warn("live standings queue full, dropping refresh", zap.Uint("pool_id", poolID))
	}
}

// Watchers returns how many clients are watching the pool.
func (h *Hub) Watchers(poolID uint) int {
	h.roomsMutex.RLock()
	defer h.roomsMutex.RUnlock()
	return len(h.rooms[poolID])
}

func (h *Hub) snapshot(ctx context.Context, poolID uint) ([]byte, bool) {
	standings, err := h.source.PoolStandings(ctx, poolID)
	if err != nil {
		h.logger.Error("failed to compute live standings", zap.Uint("pool_id", poolID), zap.Error(err))
		return nil, false
	}

	msg, err := json.Marshal(Message{Type: MessageStandings, PoolID: poolID, Standings: standings})
	if err != nil {
		h.logger.Error("failed to encode live standings", zap.Uint("pool_id", poolID), zap.Error(err))
		return nil, false
	}

	return msg, true
}

func (h *Hub) broadcast(poolID uint, msg []byte) {
	h.roomsMutex.RLock()
	clients := make([]*Client, 0, len(h.rooms[poolID]))
	for client := range h.rooms[poolID] {
		clients = append(clients, client)
	}
	h.roomsMutex.RUnlock()

	for _, client := range clients {
		h.deliver(client, msg)
	}
}

func (h *Hub) watching(client *Client) bool {
	h.roomsMutex.RLock()
	defer h.roomsMutex.RUnlock()
	_, ok := h.rooms[client.poolID][client]
	return ok
}

// deliver drops clients that stopped reading.
func (h *Hub) deliver(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		h.logger.Warn("live client too slow, disconnecting", zap.Uint("pool_id", client.poolID), zap.Uint("user_id", client.userID))
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.roomsMutex.Lock()
	defer h.roomsMutex.Unlock()

	room, ok := h.rooms[client.poolID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.poolID)
	}
}

func (h *Hub) closeAll() {
	h.roomsMutex.Lock()
	defer h.roomsMutex.Unlock()

	for poolID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, poolID)
	}
}
