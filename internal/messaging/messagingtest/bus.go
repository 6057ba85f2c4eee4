// Package messagingtest provides an in-process bus for tests.
package messagingtest

import (
	"context"
	"strings"
	"sync"
)

// Message is one published message.
type Message struct {
	Subject string
	Data    []byte
}

type subscription struct {
	id      int
	pattern string
	handler func(string, []byte)
}

// Bus delivers messages synchronously to matching subscribers and records
// everything published.
type Bus struct {
	mu        sync.Mutex
	nextId    int
	subs      []subscription
	published []Message
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) WaitReady(context.Context) error {
	return nil
}

func (b *Bus) Subscribe(subject string, handler func(string, []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextId++
	id := b.nextId
	b.subs = append(b.subs, subscription{id: id, pattern: subject, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}, nil
}

func (b *Bus) Publish(subject string, data []byte) error {
	b.mu.Lock()
	b.published = append(b.published, Message{Subject: subject, Data: append([]byte(nil), data...)})
	var handlers []func(string, []byte)
	for _, s := range b.subs {
		if Match(s.pattern, subject) {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(subject, data)
	}
	return nil
}

// Published returns every message published on subject.
func (b *Bus) Published(subject string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Message
	for _, m := range b.published {
		if m.Subject == subject {
			out = append(out, m)
		}
	}
	return out
}

// Subscriptions returns the number of live subscriptions.
func (b *Bus) Subscriptions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Match reports whether subject matches a NATS subject pattern.
func Match(pattern, subject string) bool {
	p := strings.Split(pattern, ".")
	s := strings.Split(subject, ".")
	for i, tok := range p {
		if tok == ">" {
			return len(s) > i
		}
		if i >= len(s) {
			return false
		}
		if tok != "*" && tok != s[i] {
			return false
		}
	}
	return len(p) == len(s)
}
