package puzzles

import (
	"log"
	"net/http"
	"strconv"

	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SolvesWebSocket handles WebSocket connections for a puzzle's live solve feed
func SolvesWebSocket(c *gin.Context) {
	puzzleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidPuzzleID})
		return
	}

	puzzle, err := services.GetPuzzleByID(uint(puzzleID))
	if err != nil || !puzzle.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrPuzzleNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(puzzle.ID, conn)
	defer func() {
		realtime.UnregisterClient(puzzle.ID, conn)
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
