package feed

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventOrderUpdate  = "order_update"
	EventStaffNotif   = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi dashboard staff/admin untuk feed order live.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated menyiarkan order baru dari bot ke semua dashboard.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderUpdate menyiarkan perubahan status order.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastStaffNotification mengirim notifikasi teks bebas untuk staff.
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("marshal feed message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("write feed message: %v", err)
		}
	}
}

// Broadcaster mengimplementasikan bot.Notifier di atas hub package-level.
type Broadcaster struct{}

func (Broadcaster) OrderCreated(order models.Order) {
	BroadcastOrderCreated(order)
}
