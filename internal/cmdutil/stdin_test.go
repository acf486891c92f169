package cmdutil

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestWaitLineReturnsOnLine(t *testing.T) {
	err := WaitLine(context.Background(), strings.NewReader("proceed\n"))
	if err != nil {
		t.Fatal(err)
	}
}

func TestWaitLineTreatsEOFAsSignal(t *testing.T) {
	err := WaitLine(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
}

func TestWaitLineHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := WaitLine(ctx, pr)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
