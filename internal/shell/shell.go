// Package shell is the interactive front-end: a bubbletea REPL over the
// command dispatcher with live completion suggestions, styled output and
// persistent history recall.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stanza-tools/stanza/internal/dispatchers"
	"github.com/stanza-tools/stanza/internal/history"
	"github.com/stanza-tools/stanza/internal/log"
	"github.com/stanza-tools/stanza/internal/style"
	"github.com/stanza-tools/stanza/internal/suggest"
)

const (
	visibleLines   = 50
	maxSuggestHint = 8
	completeWithin = 100 * time.Millisecond
)

type model struct {
	dispatcher *dispatchers.Dispatcher
	env        *Env
	out        *bytes.Buffer
	store      *history.Store

	input       textinput.Model
	lines       []string
	suggestions suggest.Suggestions

	recall    []string
	recallPos int
	pending   string
}

func newModel(d *dispatchers.Dispatcher, env *Env, store *history.Store) *model {
	out := &bytes.Buffer{}
	env.Out = out

	ti := textinput.New()
	ti.Placeholder = "type a command, tab completes"
	ti.Prompt = style.Prompt("stanza> ")
	ti.CharLimit = 512
	ti.Width = 80
	ti.Focus()

	m := &model{
		dispatcher: d,
		env:        env,
		out:        out,
		store:      store,
		input:      ti,
		recallPos:  -1,
	}
	if store != nil {
		entries, err := store.Recent(100)
		if err != nil {
			log.Warn("shell: load history: %v", err)
		}
		for _, e := range entries {
			m.recall = append(m.recall, e.Input)
		}
	}
	return m
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.recallPos = -1
			if line == "exit" || line == "quit" {
				return m, tea.Quit
			}
			if line != "" {
				m.run(line)
			}
			m.refreshSuggestions()
			return m, nil
		case tea.KeyTab:
			m.applyCompletion()
			m.refreshSuggestions()
			return m, nil
		case tea.KeyUp:
			m.recallOlder()
			return m, nil
		case tea.KeyDown:
			m.recallNewer()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// run dispatches one line, captures command output, and records the
// outcome in history.
func (m *model) run(line string) {
	m.lines = append(m.lines, style.Prompt("stanza> ")+line)

	m.out.Reset()
	result, err := m.dispatcher.ExecuteString(line, m.env)
	for _, out := range strings.Split(m.out.String(), "\n") {
		if out != "" {
			m.lines = append(m.lines, out)
		}
	}
	if err != nil {
		m.lines = append(m.lines, style.Error(err.Error()))
	} else {
		m.lines = append(m.lines, style.Muted(fmt.Sprintf("ok (%d)", result)))
	}

	entry := history.Entry{Input: line, Succeeded: err == nil, Result: result}
	if err != nil {
		entry.Error = err.Error()
	}
	if m.store != nil {
		if _, herr := m.store.Append(entry); herr != nil {
			log.Warn("shell: record history: %v", herr)
		}
	}
	m.recall = append([]string{line}, m.recall...)

	if len(m.lines) > visibleLines*2 {
		m.lines = m.lines[len(m.lines)-visibleLines:]
	}
}

func (m *model) refreshSuggestions() {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.suggestions = suggest.Empty()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), completeWithin)
	defer cancel()
	parse := m.dispatcher.ParseString(value, m.env)
	found, err := m.dispatcher.CompletionSuggestions(ctx, parse)
	if err != nil {
		log.Debug("shell: completions for %q: %v", value, err)
		m.suggestions = suggest.Empty()
		return
	}
	m.suggestions = found
}

func (m *model) applyCompletion() {
	if m.suggestions.IsEmpty() {
		return
	}
	m.input.SetValue(m.suggestions.Values[0].Apply(m.input.Value()))
	m.input.CursorEnd()
}

func (m *model) recallOlder() {
	if m.recallPos+1 >= len(m.recall) {
		return
	}
	if m.recallPos == -1 {
		m.pending = m.input.Value()
	}
	m.recallPos++
	m.input.SetValue(m.recall[m.recallPos])
	m.input.CursorEnd()
	m.refreshSuggestions()
}

func (m *model) recallNewer() {
	if m.recallPos == -1 {
		return
	}
	m.recallPos--
	if m.recallPos == -1 {
		m.input.SetValue(m.pending)
	} else {
		m.input.SetValue(m.recall[m.recallPos])
	}
	m.input.CursorEnd()
	m.refreshSuggestions()
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(style.Header("stanza") + style.Muted("  enter runs, tab completes, ctrl+c exits") + "\n\n")

	start := 0
	if len(m.lines) > visibleLines {
		start = len(m.lines) - visibleLines
	}
	for _, line := range m.lines[start:] {
		b.WriteString(line + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	if !m.suggestions.IsEmpty() {
		texts := make([]string, 0, len(m.suggestions.Values))
		for _, s := range m.suggestions.Values {
			texts = append(texts, s.Text)
			if len(texts) == maxSuggestHint {
				texts = append(texts, "...")
				break
			}
		}
		b.WriteString(style.Muted("  "+strings.Join(texts, "  ")) + "\n")
	}
	return b.String()
}

// Run starts the interactive shell and blocks until the user exits.
// store may be nil when history persistence is unavailable.
func Run(d *dispatchers.Dispatcher, env *Env, store *history.Store) error {
	if _, err := tea.NewProgram(newModel(d, env, store)).Run(); err != nil {
		return fmt.Errorf("run shell: %w", err)
	}
	return nil
}
