// Package presence publishes advisory "now playing" activity updates.
//
// Updates travel over a buffered channel to a background goroutine that owns
// the client connection. Gameplay never waits on presence: a slow or absent
// client only costs dropped updates.
package presence

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Activity describes what the player is doing.
type Activity struct {
	Details    string    `json:"details"`
	State      string    `json:"state,omitempty"`
	Start      time.Time `json:"start,omitzero"`
	LargeImage string    `json:"large_image,omitempty"`
	LargeText  string    `json:"large_text,omitempty"`
}

// Client is a presence backend.
type Client interface {
	Connect(ctx context.Context) error
	SetActivity(ctx context.Context, a Activity) error
	Close() error
}

// Sender accepts activity updates without blocking.
type Sender interface {
	Send(a Activity)
}

// Nop discards every update.
type Nop struct{}

// Send implements Sender.
func (Nop) Send(Activity) {}

const queueSize = 8

// Publisher forwards activities to a Client from a background goroutine.
type Publisher struct {
	queue     chan Activity
	done      chan struct{}
	closeWait time.Duration
	logger    *log.Logger

	mu     sync.Mutex
	closed bool
}

// Start launches the publisher goroutine. The client gets connectTimeout to
// connect; on failure presence is disabled for the rest of the session and
// later updates are discarded.
func Start(client Client, connectTimeout time.Duration) *Publisher {
	p := &Publisher{
		queue:     make(chan Activity, queueSize),
		done:      make(chan struct{}),
		closeWait: connectTimeout + time.Second,
		logger:    log.Default().WithPrefix("presence"),
	}
	go p.run(client, connectTimeout)
	return p
}

// Send queues an update. If the queue is full the update is dropped.
func (p *Publisher) Send(a Activity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.queue <- a:
	default:
		p.logger.Debug("queue full, dropping update", "details", a.Details)
	}
}

// Close stops the goroutine after it has handled queued updates. It waits at
// most the connect timeout plus one second; a client stuck past that is
// abandoned.
func (p *Publisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	timer := time.NewTimer(p.closeWait)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Warn("client did not stop in time, abandoning it", "wait", p.closeWait)
	}
}

func (p *Publisher) run(client Client, connectTimeout time.Duration) {
	defer close(p.done)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	err := client.Connect(ctx)
	cancel()
	if err != nil {
		p.logger.Warn("cannot connect, presence disabled", "err", err)
		for range p.queue {
		}
		return
	}
	p.logger.Info("connected")

	defer func() {
		if err := client.Close(); err != nil {
			p.logger.Warn("close failed", "err", err)
		}
	}()

	for a := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		if err := client.SetActivity(ctx, a); err != nil {
			p.logger.Warn("cannot set activity", "details", a.Details, "err", err)
		}
		cancel()
	}
}
