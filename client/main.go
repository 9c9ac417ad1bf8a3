package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// send marshals a message and sends it as one text frame.
func send(c *websocket.Conn, msg map[string]any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func position(args []string) ([]int, bool) {
	if len(args) != 2 {
		return nil, false
	}
	row, err1 := strconv.Atoi(args[0])
	col, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return []int{row, col}, true
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- RECV: %s", string(message))
		}
	}()

	log.Println("Client started. Commands:")
	log.Println("  create <roomId>         create a room (4 digits)")
	log.Println("  join <roomId>           join a room")
	log.Println("  set <gridSize> <policy> configure the game (policy: random|win|lose|host|guest)")
	log.Println("  poison <row> <col>      hide your poison cake")
	log.Println("  pick <row> <col>        eat a cake on your turn")
	log.Println("  restart                 start another round")
	log.Println("  leave                   leave the room")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(strings.TrimSpace(text))
			if len(fields) == 0 {
				continue
			}

			var msg map[string]any
			switch fields[0] {
			case "create":
				if len(fields) != 2 {
					log.Println("Usage: create <roomId>")
					continue
				}
				msg = map[string]any{"type": "create_room", "roomId": fields[1]}
			case "join":
				if len(fields) != 2 {
					log.Println("Usage: join <roomId>")
					continue
				}
				msg = map[string]any{"type": "join_room", "roomId": fields[1]}
			case "set":
				if len(fields) != 3 {
					log.Println("Usage: set <gridSize> <policy>")
					continue
				}
				size, err := strconv.Atoi(fields[1])
				if err != nil {
					log.Println("Grid size must be a number")
					continue
				}
				msg = map[string]any{"type": "set_cakes", "gridSize": size, "who_go_first": fields[2]}
			case "poison":
				pos, ok := position(fields[1:])
				if !ok {
					log.Println("Usage: poison <row> <col>")
					continue
				}
				msg = map[string]any{"type": "choose_poison", "position": pos}
			case "pick":
				pos, ok := position(fields[1:])
				if !ok {
					log.Println("Usage: pick <row> <col>")
					continue
				}
				msg = map[string]any{"type": "select_cake", "position": pos}
			case "restart":
				msg = map[string]any{"type": "restart_game"}
			case "leave":
				msg = map[string]any{"type": "leave_room"}
			case "ping":
				msg = map[string]any{"type": "ping"}
			default:
				log.Printf("Unknown command: %s", fields[0])
				continue
			}

			if err := send(c, msg); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", fields[0])
		}
	}
}
