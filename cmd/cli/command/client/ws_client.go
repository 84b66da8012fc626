package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

// ws_client.go = streams notifications from the API's websocket endpoint.

type notificationFrame struct {
	Type         string `json:"type"`
	Content      string `json:"content"`
	Notification *struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"notification"`
}

// wsURL turns http(s)://host/api into ws(s)://host/api/notifications/ws.
func wsURL(apiURL string) (string, error) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/notifications/ws"
	return u.String(), nil
}

func WatchNotifications(apiURL, token string) error {
	target, err := wsURL(apiURL)
	if err != nil {
		return err
	}

	// Connect with auth header
	header := http.Header{}
	header.Add("Authorization", "Bearer "+token)

	fmt.Printf("\n🔌 Connecting to %s...\n", target)
	conn, _, err := websocket.DefaultDialer.Dial(target, header)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// Channel for interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// Goroutine to receive messages
	done := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				done <- err
				return
			}
			var frame notificationFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				continue
			}
			printFrame(frame)
		}
	}()

	select {
	case <-interrupt:
		fmt.Println("Closing connection...")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return nil
	case err := <-done:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return err
	}
}

func printFrame(frame notificationFrame) {
	switch frame.Type {
	case "system":
		color.Yellow("🔔 %s", frame.Content)
	case "notification":
		if frame.Notification == nil {
			return
		}
		if frame.Notification.Type == "magazine" {
			color.Magenta("[%s] %s", frame.Notification.Title, frame.Notification.Message)
		} else {
			color.Cyan("[%s] %s", frame.Notification.Title, frame.Notification.Message)
		}
	}
}
