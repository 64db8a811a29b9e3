package notify

import (
	"context"
	"log"
	"time"
)

type Push struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Dispatcher entrega pushes em background, no mesmo desenho da fila
// de auditoria: canal com buffer, worker único, descarte quando cheio.
type Dispatcher struct {
	notifier Notifier
	queue    chan Push
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Push, 200),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for p := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

		if err := d.notifier.Send(ctx, p.Token, p.Title, p.Body, p.Data); err != nil {
			log.Println("push error:", err)
		}

		cancel()
	}
}

func (d *Dispatcher) Dispatch(p Push) {
	select {
	case d.queue <- p:
	default:
		log.Println("push queue full, dropping notification")
	}
}
