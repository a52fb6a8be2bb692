package gateway

import (
	"context"

	"github.com/google/uuid"
)

// subscription ties a connection to one conversation group.
type subscription struct {
	client         *Client
	conversationID uuid.UUID
}

// outbound is a payload headed for every member of a conversation group.
type outbound struct {
	conversationID uuid.UUID
	payload        []byte
}

// Hub owns all conversation groups. Membership changes and broadcasts flow
// through its channels and are applied by a single goroutine, so a broadcast
// observes a consistent member set and per-group delivery order matches the
// order in which sends reached the hub.
type Hub struct {
	groups map[uuid.UUID]map[*Client]bool

	register   chan subscription
	unregister chan subscription
	detach     chan *Client
	broadcast  chan outbound
}

func NewHub() *Hub {
	return &Hub{
		groups:     make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		detach:     make(chan *Client),
		broadcast:  make(chan outbound, 64),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			group := h.groups[sub.conversationID]
			if group == nil {
				group = make(map[*Client]bool)
				h.groups[sub.conversationID] = group
			}
			group[sub.client] = true

		case sub := <-h.unregister:
			h.remove(sub.conversationID, sub.client)

		case client := <-h.detach:
			for id, group := range h.groups {
				if group[client] {
					h.remove(id, client)
				}
			}
			client.closeSend()

		case msg := <-h.broadcast:
			for client := range h.groups[msg.conversationID] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer: drop the connection rather than
					// blocking delivery to the rest of the group.
					for id, group := range h.groups {
						if group[client] {
							h.remove(id, client)
						}
					}
					client.closeSend()
				}
			}
		}
	}
}

func (h *Hub) remove(conversationID uuid.UUID, client *Client) {
	group := h.groups[conversationID]
	if group == nil {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.groups, conversationID)
	}
}
