package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixil98/go-loadout/internal/loadout"
)

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscriber delivers messages published on subject to handler. Subjects
// may use NATS wildcards; handler receives the concrete subject.
type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

// Bus is a connection that may not be usable until WaitReady returns.
type Bus interface {
	Publisher
	Subscriber
	WaitReady(ctx context.Context) error
}

// PublishJSON encodes v and publishes it on subject.
func PublishJSON(pub Publisher, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding message for %s: %w", subject, err)
	}
	return pub.Publish(subject, data)
}

const DefaultSubjectPrefix = "loadout"

// Subjects builds the subject names used on the bus under a common prefix.
type Subjects struct {
	prefix string
}

func NewSubjects(prefix string) Subjects {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return Subjects{prefix: prefix}
}

func (s Subjects) Prefix() string {
	if s.prefix == "" {
		return DefaultSubjectPrefix
	}
	return s.prefix
}

// Container is where the game client publishes the contents of ct.
func (s Subjects) Container(ct loadout.ContainerType) string {
	return s.join("container", strings.ToLower(ct.String()))
}

// AllContainers matches every Container subject.
func (s Subjects) AllContainers() string {
	return s.join("container", "*")
}

// ContainerFrom extracts the container type from a Container subject.
func (s Subjects) ContainerFrom(subject string) (loadout.ContainerType, error) {
	prefix := s.join("container", "")
	name, ok := strings.CutPrefix(subject, prefix)
	if !ok || name == "" {
		return loadout.ContainerUnknown, fmt.Errorf("subject %q is not a container subject", subject)
	}
	return loadout.ParseContainerType(name)
}

// Render carries the set of active render states.
func (s Subjects) Render() string {
	return s.join("render")
}

// Highlight is where per-slot classes for ct are published.
func (s Subjects) Highlight(ct loadout.ContainerType) string {
	return s.join("highlight", strings.ToLower(ct.String()))
}

// ProfileSync announces that stored profiles changed.
func (s Subjects) ProfileSync() string {
	return s.join("profiles", "sync")
}

func (s Subjects) join(parts ...string) string {
	return s.Prefix() + "." + strings.Join(parts, ".")
}
