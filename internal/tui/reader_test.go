package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLineReader(t *testing.T) {
	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("  x**2 \n\n3"), &out)
	ctx := context.Background()

	tests := []struct {
		want string
		err  error
	}{
		{"x**2", nil},
		{"", nil},
		{"3", nil},
		{"", io.EOF},
	}
	for i, tc := range tests {
		got, err := r.ReadLine(ctx, "> ")
		if !errors.Is(err, tc.err) {
			t.Fatalf("read %d: got error %v, want %v", i, err, tc.err)
		}
		if got != tc.want {
			t.Errorf("read %d: got %q, want %q", i, got, tc.want)
		}
	}
	if strings.Count(out.String(), "> ") != len(tests) {
		t.Errorf("expected a prompt per read, got %q", out.String())
	}
}

func TestLineReaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("x\n"), &out)
	if _, err := r.ReadLine(ctx, "> "); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("cancelled read should not prompt, got %q", out.String())
	}
}

func TestLineReaderBlockedRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewLineReader(pr, io.Discard)
	done := make(chan error, 1)
	go func() {
		_, err := r.ReadLine(ctx, "")
		done <- err
	}()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLineReaderKeepsLineAfterCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewLineReader(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := r.ReadLine(ctx, ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}

	go pw.Write([]byte("x**2\n"))
	got, err := r.ReadLine(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "x**2" {
		t.Errorf("got %q, want %q", got, "x**2")
	}
}

func press(m promptModel, keys ...tea.KeyMsg) promptModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(promptModel)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPromptModelEnter(t *testing.T) {
	m := press(newPromptModel("> ", nil), typed("x**3"), tea.KeyMsg{Type: tea.KeyEnter})

	if !m.done || m.interrupted || m.eof {
		t.Fatalf("unexpected state done=%v interrupted=%v eof=%v", m.done, m.interrupted, m.eof)
	}
	if m.input.Value() != "x**3" {
		t.Errorf("got %q, want x**3", m.input.Value())
	}
	if m.View() != "" {
		t.Error("finished prompt should render nothing")
	}
}

func TestPromptModelInterrupt(t *testing.T) {
	m := press(newPromptModel("> ", nil), typed("x"), tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.interrupted {
		t.Error("ctrl+c should interrupt")
	}
}

func TestPromptModelEOF(t *testing.T) {
	m := press(newPromptModel("> ", nil), typed("x"), tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.eof {
		t.Error("ctrl+d with text should not end input")
	}

	m = press(newPromptModel("> ", nil), tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.eof {
		t.Error("ctrl+d on an empty line should end input")
	}
}

func TestPromptModelHistory(t *testing.T) {
	m := newPromptModel("> ", []string{"x**2", "sin(x)"})
	m = press(m, typed("draft"))

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "sin(x)" {
		t.Errorf("up: got %q, want sin(x)", got)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "x**2" {
		t.Errorf("up past start: got %q, want x**2", got)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "draft" {
		t.Errorf("down to end: got %q, want draft", got)
	}
}
