package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	titleGlyph    = "👁️ "
	footerText    = "Haunted Eternity Observer"
	maxFieldValue = 1000 // Webhook embeds reject field values above 1024 bytes
	queueSize     = 64
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      embedFooter  `json:"footer"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

// Webhook posts events as JSON embeds to a configured URL from a single
// background sender. Events are dropped when the queue is full, delivery is
// disabled, or no URL is configured; send failures are discarded.
type Webhook struct {
	url     string
	client  *http.Client
	enabled atomic.Bool
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

// NewWebhook starts a dispatcher for url. An empty url yields a dispatcher that drops everything.
func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	w := &Webhook{
		url:    url,
		client: client,
		now:    time.Now,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
	w.enabled.Store(true)
	go w.run()
	return w
}

// SetEnabled turns delivery on or off.
func (w *Webhook) SetEnabled(enabled bool) {
	w.enabled.Store(enabled)
}

// Enabled reports whether delivery is on.
func (w *Webhook) Enabled() bool {
	return w.enabled.Load()
}

// Configured reports whether a URL was supplied.
func (w *Webhook) Configured() bool {
	return w.url != ""
}

// Dispatch queues the event without blocking.
func (w *Webhook) Dispatch(e Event) {
	if w.url == "" || !w.enabled.Load() {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = w.now()
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- e:
	default:
	}
}

// Close stops accepting events and waits for queued ones to be sent, or for ctx to end.
func (w *Webhook) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Webhook) run() {
	defer close(w.done)
	for e := range w.queue {
		w.send(e)
	}
}

func (w *Webhook) send(e Event) {
	body, err := json.Marshal(encode(e))
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close() //nolint:errcheck
}

func encode(e Event) payload {
	fields := make([]embedField, 0, len(e.Fields))
	for _, f := range e.Fields {
		value := f.Value
		if len(value) > maxFieldValue {
			value = value[:maxFieldValue]
		}
		fields = append(fields, embedField{
			Name:   f.Name,
			Value:  "```" + value + "```",
			Inline: true,
		})
	}

	return payload{Embeds: []embed{{
		Title:       titleGlyph + e.Title,
		Description: e.Description,
		Color:       e.Color,
		Fields:      fields,
		Timestamp:   e.Timestamp.UTC().Format(time.RFC3339Nano),
		Footer:      embedFooter{Text: footerText},
	}}}
}
