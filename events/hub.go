// Package events pushes floor changes (tables, orders, queued orders) to
// connected staff dashboards over websockets.
package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"dinehall/utils"
)

const (
	EventTableCreate = "table_create"
	EventTableUpdate = "table_update"
	EventTableDelete = "table_delete"
	EventOrderCreate = "order_create"
	EventOrderUpdate = "order_update"
	EventOrderQueued = "order_queued"
	EventOrderReplay = "order_replayed"
	EventStaffNotif  = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans messages out to every client registered for a restaurant.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> restaurant id
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, restaurantID string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = restaurantID
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast sends an event to every client of the given restaurant.
func Broadcast(restaurantID, event string, data interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("events: marshal failed: %v", err)
		return
	}

	for conn, rid := range hub.clients {
		if rid != restaurantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("events: send failed: %v", err)
		}
	}
}
