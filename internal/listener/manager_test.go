package listener

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/pixil98/go-testutil"
)

type sessionFunc func(context.Context, io.ReadWriter) error

func (f sessionFunc) RunSession(ctx context.Context, conn io.ReadWriter) error {
	return f(ctx, conn)
}

func TestConnectionManager_AcceptConnection(t *testing.T) {
	var m *ConnectionManager
	var during int64
	m = NewConnectionManager(sessionFunc(func(ctx context.Context, conn io.ReadWriter) error {
		during = m.Open()
		return errors.New("connection reset")
	}))

	m.AcceptConnection(context.Background(), &pipe{})

	testutil.AssertEqual(t, "open during session", during, int64(1))
	testutil.AssertEqual(t, "open after session", m.Open(), int64(0))
}
