package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

const Prompt = "User:> "

// ErrInterrupted is returned by a LineReader when the user pressed ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input. It returns io.EOF when input is
// exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// NewLineReader picks an interactive prompt on terminals and a plain scanner
// for pipes and files.
func NewLineReader(in *os.File, out io.Writer) LineReader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &PromptReader{}
	}
	return NewScannerReader(in, out)
}

// PromptReader reads lines with promptui, which gives history-free line
// editing on a terminal.
type PromptReader struct{}

func (p *PromptReader) ReadLine() (string, error) {
	prompt := promptui.Prompt{
		Label: Prompt,
		Templates: &promptui.PromptTemplates{
			Prompt:  "{{ . }}",
			Valid:   "{{ . }}",
			Invalid: "{{ . }}",
			Success: "{{ . }}",
		},
	}
	line, err := prompt.Run()
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return "", ErrInterrupted
	case errors.Is(err, promptui.ErrEOF):
		return "", io.EOF
	case err != nil:
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return line, nil
}

type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (s *ScannerReader) ReadLine() (string, error) {
	fmt.Fprint(s.out, Prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
