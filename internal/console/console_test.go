package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptReader struct {
	lines []string
	err   error
}

func (s *scriptReader) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", s.err
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestScannerReader(t *testing.T) {
	var out bytes.Buffer
	r := NewScannerReader(strings.NewReader("hello\nworld\n"), &out)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "world", line)
	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "User:> User:> User:> ", out.String())
}

func TestLoopStopsOnExit(t *testing.T) {
	var out bytes.Buffer
	var seen []string
	err := Loop(context.Background(), &scriptReader{lines: []string{"hi", "", "  weather?  ", "exit", "never"}}, &out,
		func(_ context.Context, input string) error {
			seen = append(seen, input)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "weather?"}, seen)
	assert.Equal(t, "\n\nExiting chat...\n", out.String())
}

func TestLoopStopsOnEOFAndInterrupt(t *testing.T) {
	for _, end := range []error{io.EOF, ErrInterrupted} {
		var out bytes.Buffer
		err := Loop(context.Background(), &scriptReader{err: end}, &out, func(context.Context, string) error { return nil })
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Exiting chat...")
	}
}

func TestLoopContinuesAfterTurnFailure(t *testing.T) {
	var out bytes.Buffer
	calls := 0
	err := Loop(context.Background(), &scriptReader{lines: []string{"a", "b"}, err: io.EOF}, &out,
		func(_ context.Context, input string) error {
			calls++
			if input == "a" {
				return &core.ToolCallError{Kind: core.ErrUnknownFunction}
			}
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "does not exist")
}

func TestLoopReturnsOtherErrors(t *testing.T) {
	boom := errors.New("upstream unavailable")
	err := Loop(context.Background(), &scriptReader{lines: []string{"a", "b"}}, &bytes.Buffer{},
		func(context.Context, string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestLoopHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Loop(ctx, &scriptReader{lines: []string{"a"}}, &out, func(context.Context, string) error {
		t.Fatal("handler must not run after cancel")
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exiting chat...")
}

type blockedReader struct{}

func (blockedReader) ReadLine() (string, error) {
	time.Sleep(time.Hour)
	return "", io.EOF
}

func TestLoopCancelWhileReading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	var out bytes.Buffer
	err := Loop(ctx, blockedReader{}, &out, func(context.Context, string) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exiting chat...")
}

func TestLoopCancelDuringTurn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	err := Loop(ctx, &scriptReader{lines: []string{"a", "b"}}, &out, func(ctx context.Context, input string) error {
		require.Equal(t, "a", input)
		cancel()
		<-ctx.Done()
		return fmt.Errorf("request aborted: %w", ctx.Err())
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exiting chat...")
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, 0)
	hooks := p.Hooks()
	hooks.OnText("It's 10°F ")
	hooks.OnText("in Tokyo.")
	p.End()
	p.End()
	assert.Equal(t, "Assistant:> It's 10°F in Tokyo.\nAssistant:> \n", out.String())
}
