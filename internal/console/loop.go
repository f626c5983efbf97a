package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rorical/RoriFunc/internal/core"
)

const (
	exitCommand = "exit"
	exitMessage = "\n\nExiting chat..."
)

// Handler runs one turn for a line of user input.
type Handler func(ctx context.Context, input string) error

// Loop reads lines and hands them to handle until the user leaves. A turn
// failure is printed and the loop keeps going; any other handler error stops
// the loop and is returned.
func Loop(ctx context.Context, reader LineReader, out io.Writer, handle Handler) error {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out, exitMessage)
			return nil
		}

		line, err := readLine(ctx, reader)
		if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) || ctx.Err() != nil {
			fmt.Fprintln(out, exitMessage)
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == exitCommand {
			fmt.Fprintln(out, exitMessage)
			return nil
		}

		if err := handle(ctx, input); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				fmt.Fprintln(out, exitMessage)
				return nil
			}
			if core.IsTurnFailure(err) {
				fmt.Fprintf(out, "\n%v\n", err)
				continue
			}
			return err
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLine returns early when ctx is done. The pending read is abandoned.
func readLine(ctx context.Context, reader LineReader) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := reader.ReadLine()
		ch <- readResult{line: line, err: err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Printer writes an assistant reply as it streams in.
type Printer struct {
	out   io.Writer
	delay time.Duration
	open  bool
}

func NewPrinter(out io.Writer, delay time.Duration) *Printer {
	return &Printer{out: out, delay: delay}
}

// Text prints one delta, opening the reply line on first use.
func (p *Printer) Text(delta string) {
	if !p.open {
		fmt.Fprint(p.out, "Assistant:> ")
		p.open = true
	}
	fmt.Fprint(p.out, delta)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
}

// End closes the reply line. A turn that printed nothing still gets the
// prefix so every turn leaves one line behind.
func (p *Printer) End() {
	if !p.open {
		fmt.Fprint(p.out, "Assistant:> ")
	}
	fmt.Fprintln(p.out)
	p.open = false
}

func (p *Printer) Hooks() core.Hooks {
	return core.Hooks{OnText: p.Text}
}
