package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"backend-stridehub/internal/track"

	"github.com/redis/go-redis/v9"
)

// LiveUpdate is the payload pushed to subscribers for every accepted
// route point of the active run.
type LiveUpdate struct {
	RunID     string        `json:"run_id"`
	Point     track.Reading `json:"point"`
	DistanceM float64       `json:"distance_m"`
}

// Hub fans accepted route points out to websocket subscribers of a run.
// With redis configured, updates also publish to a pubsub channel so
// subscribers on other instances receive them.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	RunID string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(runID string) *Client {
	client := &Client{
		RunID: runID,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[runID] == nil {
		h.clients[runID] = map[*Client]struct{}{}
	}
	h.clients[runID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if runClients, ok := h.clients[client.RunID]; ok {
		delete(runClients, client)
		if len(runClients) == 0 {
			delete(h.clients, client.RunID)
		}
	}
	close(client.Send)
}

// PublishPoint broadcasts one accepted route point to subscribers of runID.
func (h *Hub) PublishPoint(runID string, point track.Reading, distanceM float64) {
	payload, err := json.Marshal(LiveUpdate{RunID: runID, Point: point, DistanceM: distanceM})
	if err != nil {
		return
	}
	h.Broadcast(runID, payload)
}

func (h *Hub) Broadcast(runID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[runID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(runID), payload).Err()
		if err != nil {
			log.Printf("stream: redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "run:*:live")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		runID := runIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[runID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(runID string) string {
	return "run:" + runID + ":live"
}

// run:{id}:live
func runIDFromChannel(ch string) string {
	const prefix = "run:"
	const suffix = ":live"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
