package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	puzzleClients = make(map[uint]map[*websocket.Conn]bool) // Map of puzzle ID to connected clients
	broadcast     = make(chan SolveUpdate)                  // Broadcast channel for solve events
	mutex         sync.Mutex                                // Mutex to protect puzzleClients map
)

// SolveUpdate represents one correct submission on a puzzle
type SolveUpdate struct {
	PuzzleID uint      `json:"puzzle_id"`
	UserName string    `json:"user_name"`
	Attempts int       `json:"attempts"`
	SolvedAt time.Time `json:"solved_at"`
}

// RegisterClient adds a WebSocket client to a specific puzzle feed
func RegisterClient(puzzleID uint, conn *websocket.Conn) {
	mutex.Lock()
	if puzzleClients[puzzleID] == nil {
		puzzleClients[puzzleID] = make(map[*websocket.Conn]bool)
	}
	puzzleClients[puzzleID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific puzzle feed
func UnregisterClient(puzzleID uint, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := puzzleClients[puzzleID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(puzzleClients, puzzleID)
		}
	}
	mutex.Unlock()
}

// BroadcastSolve sends a solve event to all clients watching the puzzle
func BroadcastSolve(update SolveUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := puzzleClients[update.PuzzleID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
