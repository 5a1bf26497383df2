// Package logging provides the log broadcaster for real-time log streaming
// to the operator dashboard.
package logging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// LogEntry represents a single log entry to be sent to the dashboard.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Channel   string `json:"channel"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	TenantID  string `json:"tenantId,omitempty"`
}

// StreamClient represents one connected dashboard tab listening for logs.
type StreamClient struct {
	id      string
	Out     chan []byte
	filters StreamFilters
}

// StreamFilters defines the filtering criteria for a client. Channel "all"
// matches every log.
type StreamFilters struct {
	Channel Channel
	Level   slog.Level
}

// LogBroadcaster manages stream clients and distributes log messages.
type LogBroadcaster struct {
	clients    map[*StreamClient]bool
	register   chan *StreamClient
	unregister chan *StreamClient
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     *slog.Logger
	stop       chan struct{}
}

var (
	broadcaster *LogBroadcaster
	once        sync.Once
)

// GetBroadcaster initializes and returns the singleton LogBroadcaster.
func GetBroadcaster() *LogBroadcaster {
	once.Do(func() {
		broadcaster = &LogBroadcaster{
			clients:    make(map[*StreamClient]bool),
			register:   make(chan *StreamClient),
			unregister: make(chan *StreamClient),
			broadcast:  make(chan []byte, 1000),
			logger:     slog.Default().With("component", "LogBroadcaster"),
			stop:       make(chan struct{}),
		}
		go broadcaster.run()
	})
	return broadcaster
}

func (b *LogBroadcaster) run() {
	for {
		select {
		case <-b.stop:
			return
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Out)
			}
			b.mu.Unlock()
		case message := <-b.broadcast:
			b.distribute(message)
		}
	}
}

// distribute sends a log message to all clients whose filters match.
func (b *LogBroadcaster) distribute(message []byte) {
	var entry LogEntry
	if err := json.Unmarshal(message, &entry); err != nil {
		b.logger.Error("Failed to unmarshal log entry for distribution", "error", err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for client := range b.clients {
		channelMatch := client.filters.Channel == "all" || client.filters.Channel == Channel(entry.Channel)
		levelMatch := entry.Level >= client.filters.Level.String()

		if channelMatch && levelMatch {
			select {
			case client.Out <- message:
			default:
				// Slow or disconnected client; drop rather than block.
			}
		}
	}
}

// SubmitLog sends a log entry to the broadcaster without blocking.
func (b *LogBroadcaster) SubmitLog(entry LogEntry) {
	message, err := json.Marshal(entry)
	if err != nil {
		b.logger.Error("Failed to marshal log entry for broadcast", "error", err)
		return
	}

	select {
	case b.broadcast <- message:
	default:
		// Broadcast buffer full under heavy logging load; drop the message.
	}
}

// NewClient creates a new stream client for the broadcaster.
func (b *LogBroadcaster) NewClient(filters StreamFilters) *StreamClient {
	return &StreamClient{
		id:      fmt.Sprintf("%d", time.Now().UnixNano()),
		Out:     make(chan []byte, 100),
		filters: filters,
	}
}

// RegisterClient adds a new stream client.
func (b *LogBroadcaster) RegisterClient(client *StreamClient) {
	b.register <- client
}

// UnregisterClient removes a stream client.
func (b *LogBroadcaster) UnregisterClient(client *StreamClient) {
	b.unregister <- client
}

// Shutdown gracefully stops the broadcaster.
func (b *LogBroadcaster) Shutdown() {
	close(b.stop)
}
