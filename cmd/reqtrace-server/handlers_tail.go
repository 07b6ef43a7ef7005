package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// broadcaster receives every formatted log line (it sits behind the
// sink via io.MultiWriter), keeps a bounded ring of recent lines for
// /history, and fans live lines out to /tail subscribers.
type broadcaster struct {
	mu     sync.Mutex
	recent []string
	size   int
	subs   map[chan string]struct{}
}

func newBroadcaster(size int) *broadcaster {
	if size <= 0 {
		size = 200
	}
	return &broadcaster{size: size, subs: make(map[chan string]struct{})}
}

// Write receives one complete line per call; the sink serializes calls.
func (b *broadcaster) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	b.mu.Lock()
	b.recent = append(b.recent, line)
	if len(b.recent) > b.size {
		b.recent = b.recent[len(b.recent)-b.size:]
	}
	for ch := range b.subs {
		select {
		case ch <- line:
		default: // slow tailers drop lines rather than block the sink
		}
	}
	b.mu.Unlock()
	return len(p), nil
}

func (b *broadcaster) history() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.recent))
	copy(out, b.recent)
	return out
}

func (b *broadcaster) subscribe() chan string {
	ch := make(chan string, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broadcaster) unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// tailHandler streams log lines over a websocket: the recent history
// first, then live lines as they are emitted.
func tailHandler(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		return nil
	}
	defer conn.Close()

	ch := tailFeed.subscribe()
	defer tailFeed.unsubscribe(ch)

	// Detect the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for _, line := range tailFeed.history() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return nil
		}
	}
	for {
		select {
		case line := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}

// historyHandler returns the recent log lines as JSON.
func historyHandler(w http.ResponseWriter, r *http.Request) error {
	lines := tailFeed.history()
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"count": len(lines),
		"lines": lines,
	})
}
