package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/deckweaver/deckweaver/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEvent tells clients the live project changed; they refetch what they
// display. Coalescing is fine, so the feed drops events when a client reads
// slowly.
type wsEvent struct {
	Type     string `json:"type"`
	Selected int    `json:"selected"`
	Slides   int    `json:"slides"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	events := make(chan wsEvent, 8)
	unsubscribe := s.live.Subscribe(func(c store.Change) {
		ev := wsEvent{Type: "slides", Selected: c.Selected, Slides: len(c.Project.Slides)}
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	// Read loop only detects the close; clients send nothing meaningful.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("server: websocket read: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("server: websocket write: %v", err)
				return
			}
		}
	}
}
