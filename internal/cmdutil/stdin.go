package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
)

// WaitLine blocks until one line arrives on the given reader (usually
// stdin) or the context is canceled. The demos use it as the external
// signal that the caller is done inspecting intermediate state and the
// process should proceed to cleanup.
//
// EOF counts as a signal, that way the demos still terminate when their
// input is closed instead of hanging forever.
func WaitLine(ctx context.Context, in io.Reader) error {
	if in == nil {
		in = os.Stdin
	}
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()
	select {
	case <-ctx.Done():
		// the reader goroutine stays blocked on ReadString until its
		// input closes, cancellation here only abandons it and the
		// process is on its way out anyway
		return ctx.Err()
	case err := <-done:
		return err
	}
}
