package gateway

import (
	"context"
	"log/slog"

	redisrepo "github.com/deniscmrg/investia-api/internal/repository/redis"
)

type subscription struct {
	client *Client
	symbol string
}

type tickEvent struct {
	symbol string
	data   []byte
}

// Hub fans live ticks out to WebSocket clients, one redis subscription
// per symbol with at least one subscriber. Every access to the client
// and subscription maps, including closing a client's send channel,
// happens on the Run goroutine; tick pumps hand their payloads over
// through the broadcast channel.
type Hub struct {
	clients     map[*Client]bool
	subs        map[string]map[*Client]bool
	pumpCancels map[string]context.CancelFunc

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	broadcast   chan tickEvent

	tickRepo *redisrepo.TickRepo
	logger   *slog.Logger
}

func NewHub(tickRepo *redisrepo.TickRepo, logger *slog.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		subs:        make(map[string]map[*Client]bool),
		pumpCancels: make(map[string]context.CancelFunc),
		register:    make(chan *Client, 64),
		unregister:  make(chan *Client, 64),
		subscribe:   make(chan subscription, 64),
		unsubscribe: make(chan subscription, 64),
		broadcast:   make(chan tickEvent, 256),
		tickRepo:    tickRepo,
		logger:      logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for sym, clients := range h.subs {
					if _, ok := clients[client]; ok {
						delete(clients, client)
						if len(clients) == 0 {
							h.stopPump(sym)
						}
					}
				}
				close(client.send)
			}
		case sub := <-h.subscribe:
			if _, ok := h.subs[sub.symbol]; !ok {
				h.subs[sub.symbol] = make(map[*Client]bool)
				if h.tickRepo != nil {
					subCtx, cancel := context.WithCancel(ctx)
					h.pumpCancels[sub.symbol] = cancel
					go h.pumpTicks(subCtx, sub.symbol)
				}
			}
			h.subs[sub.symbol][sub.client] = true
		case sub := <-h.unsubscribe:
			if clients, ok := h.subs[sub.symbol]; ok {
				delete(clients, sub.client)
				if len(clients) == 0 {
					h.stopPump(sub.symbol)
				}
			}
		case ev := <-h.broadcast:
			h.fanOut(ev.symbol, ev.data)
		}
	}
}

func (h *Hub) stopPump(symbol string) {
	if cancel, ok := h.pumpCancels[symbol]; ok {
		cancel()
		delete(h.pumpCancels, symbol)
	}
	delete(h.subs, symbol)
}

// pumpTicks relays one symbol's redis channel into the broadcast
// channel. It never touches the subscriber maps.
func (h *Hub) pumpTicks(ctx context.Context, symbol string) {
	pubsub := h.tickRepo.Subscribe(ctx, symbol)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case h.broadcast <- tickEvent{symbol: symbol, data: []byte(msg.Payload)}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// fanOut delivers a tick to every subscriber of the symbol, dropping
// it for clients whose send buffer is full. Run goroutine only.
func (h *Hub) fanOut(symbol string, data []byte) {
	for client := range h.subs[symbol] {
		select {
		case client.send <- data:
		default:
		}
	}
}
