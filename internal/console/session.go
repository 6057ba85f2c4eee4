package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const banner = "loadout console. Type 'help' for a list of commands."

// RunSession serves one console connection until the user quits, the
// connection closes, or ctx is cancelled.
func (h *Handler) RunSession(ctx context.Context, conn io.ReadWriter) error {
	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	err := writeLine(conn, banner)
	if err != nil {
		return err
	}
	err = prompt(conn)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				err = prompt(conn)
				if err != nil {
					return err
				}
				continue
			}

			parts := strings.Fields(line)
			out, err := h.Exec(ctx, parts[0], parts[1:]...)
			if out != "" {
				if werr := writeLine(conn, out); werr != nil {
					return werr
				}
			}

			var userErr *UserError
			switch {
			case err == nil:
			case errors.Is(err, ErrQuit):
				return nil
			case errors.As(err, &userErr):
				if werr := writeLine(conn, userErr.Message); werr != nil {
					return werr
				}
			default:
				slog.ErrorContext(ctx, "console command failed", "command", parts[0], "error", err)
				if werr := writeLine(conn, fmt.Sprintf("Command failed: %s", err)); werr != nil {
					return werr
				}
			}

			err = prompt(conn)
			if err != nil {
				return err
			}
		}
	}
}

func prompt(w io.Writer) error {
	_, err := w.Write([]byte("> "))
	return err
}

func writeLine(w io.Writer, msg string) error {
	_, err := w.Write([]byte(msg + "\n"))
	return err
}
