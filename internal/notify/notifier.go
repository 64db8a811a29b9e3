package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Notifier entrega um push. Falha de entrega é logada e nunca
// propagada: notificação não derruba a operação principal.
type Notifier interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// ===============================
// Console (dev)
// ===============================

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Send(_ context.Context, token, title, body string, _ map[string]string) error {
	log.Printf("[push] %s → %s: %s", token, title, body)
	return nil
}

// ===============================
// Expo
// ===============================

type ExpoNotifier struct {
	url    string
	client *http.Client
}

func NewExpo(url string) *ExpoNotifier {
	return &ExpoNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (n *ExpoNotifier) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(expoMessage{
		To:    token,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("expo push returned %d", resp.StatusCode)
	}

	return nil
}
