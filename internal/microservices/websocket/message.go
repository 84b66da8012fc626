package websocket

import (
	"encoding/json"
	"time"

	"churchhub/internal/microservices/http-api/models"
)

// Message protocol definitions

type MessageType string

const (
	TypeNotification MessageType = "notification" // a notification was appended for the user
	TypeSystem       MessageType = "system"       // connection-level notice
)

// Message structure for WebSocket communication
type Message struct {
	Type         MessageType          `json:"type"`
	Notification *models.Notification `json:"notification,omitempty"`
	Content      string               `json:"content,omitempty"`
	Timestamp    time.Time            `json:"timestamp"` // time in UTC format
}

func NewNotificationMessage(n *models.Notification) *Message {
	return &Message{
		Type:         TypeNotification,
		Notification: n,
		Timestamp:    time.Now().UTC(),
	}
}

// specify the message for system
func NewSystemMessage(content string) *Message {
	return &Message{
		Type:      TypeSystem,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON: marshal Message struct to JSON
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON: unmarshal JSON data to Message struct
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
