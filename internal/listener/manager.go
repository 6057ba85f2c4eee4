package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner serves one console connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections to console sessions.
type ConnectionManager struct {
	sessions SessionRunner
	open     atomic.Int64
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.open.Add(1)
	defer m.open.Add(-1)

	slog.InfoContext(ctx, "console session started", "open", n)
	if err := m.sessions.RunSession(ctx, conn); err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "console session", "error", err)
	}
}

// Open returns the number of sessions in progress.
func (m *ConnectionManager) Open() int64 {
	return m.open.Load()
}
