// Package tui reads prompted lines from the user, with a line editor on a
// terminal and plain buffered reads otherwise.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("tui: interrupted")

// Reader shows a prompt and returns the trimmed line typed in reply. It
// returns io.EOF once input is exhausted.
type Reader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// NewReader picks a TerminalReader when in is a terminal and a LineReader
// otherwise, so piped input still works.
func NewReader(in *os.File, out io.Writer) Reader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return NewTerminalReader(in, out)
	}
	return NewLineReader(in, out)
}

// LineReader reads newline-terminated lines from any io.Reader. A single
// goroutine owns the underlying reader, so a read abandoned through its
// context leaves the pending line for the next ReadLine.
type LineReader struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan string
	err   error
}

func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{in: bufio.NewReader(in), out: out, lines: make(chan string)}
}

func (r *LineReader) pump() {
	for {
		line, err := r.in.ReadString('\n')
		// a final line without a newline still counts
		if line != "" {
			r.lines <- strings.TrimSpace(line)
		}
		if err != nil {
			r.err = err
			close(r.lines)
			return
		}
	}
}

func (r *LineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(r.out, prompt)
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", r.err
		}
		return line, nil
	}
}

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

const maxHistory = 50

// TerminalReader edits each line in a small bubbletea program. Up and down
// walk earlier answers.
type TerminalReader struct {
	in      io.Reader
	out     io.Writer
	history []string
}

func NewTerminalReader(in io.Reader, out io.Writer) *TerminalReader {
	return &TerminalReader{in: in, out: out}
}

func (r *TerminalReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	m := newPromptModel(prompt, r.history)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(r.in), tea.WithOutput(r.out))
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	res, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("tui: unexpected model %T", final)
	}
	switch {
	case res.interrupted:
		return "", ErrInterrupted
	case res.eof:
		return "", io.EOF
	}

	line := strings.TrimSpace(res.input.Value())
	// echo the accepted line, since the program clears its view on exit
	fmt.Fprintln(r.out, prompt+line)
	if line != "" && (len(r.history) == 0 || r.history[len(r.history)-1] != line) {
		r.history = append(r.history, line)
		if len(r.history) > maxHistory {
			r.history = r.history[1:]
		}
	}
	return line, nil
}

type promptModel struct {
	input       textinput.Model
	history     []string
	cursor      int
	draft       string
	done        bool
	interrupted bool
	eof         bool
}

func newPromptModel(prompt string, history []string) promptModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.CharLimit = 512
	ti.Width = 72
	ti.Focus()
	return promptModel{input: ti, history: history, cursor: len(history)}
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.done, m.interrupted = true, true
			return m, tea.Quit
		case "ctrl+d":
			if m.input.Value() == "" {
				m.done, m.eof = true, true
				return m, tea.Quit
			}
		case "up":
			if m.cursor > 0 {
				if m.cursor == len(m.history) {
					m.draft = m.input.Value()
				}
				m.cursor--
				m.input.SetValue(m.history[m.cursor])
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if m.cursor < len(m.history) {
				m.cursor++
				if m.cursor == len(m.history) {
					m.input.SetValue(m.draft)
				} else {
					m.input.SetValue(m.history[m.cursor])
				}
				m.input.CursorEnd()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View()
}
