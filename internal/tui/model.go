// Package tui is the bubbletea front end of the board. It drives the same
// shell.Session as the console loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/taskboard/internal/shell"
)

// Model shows the current page in a frame with a one-line prompt under
// it. Enter submits the prompt to the session.
type Model struct {
	ctx     context.Context
	session *shell.Session
	input   textinput.Model
	frame   string
	err     error
}

func New(ctx context.Context, session *shell.Session) *Model {
	inp := textinput.New()
	inp.Prompt = "> "
	inp.PromptStyle = promptStyle
	inp.Placeholder = "command"
	inp.Focus()
	m := &Model{ctx: ctx, session: session, input: inp}
	m.refresh()
	return m
}

// Err is the error that ended the session, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		// after an error the next key leaves
		if m.err != nil {
			return m, tea.Quit
		}
		switch key.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if err := m.session.Submit(m.ctx, line); err != nil {
		m.err = err
		return m, nil
	}
	if m.session.Done() {
		return m, tea.Quit
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	frame, err := m.session.Frame(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.frame = frame
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.crumbs())
	b.WriteString("\n")
	b.WriteString(frameStyle.Render(strings.TrimRight(m.frame, "\n")))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error rendering page: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Press any key to continue..."))
		return b.String()
	}
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) crumbs() string {
	titles := m.session.Breadcrumbs()
	parts := make([]string, len(titles))
	for i, t := range titles {
		if i == len(titles)-1 {
			parts[i] = crumbLastStyle.Render(t)
			continue
		}
		parts[i] = crumbStyle.Render(t)
	}
	return strings.Join(parts, crumbStyle.Render(" › "))
}

// Run shows the board full screen until the stack empties, the user
// quits or ctx is cancelled. It returns the error that ended the
// session.
func Run(ctx context.Context, session *shell.Session) error {
	p := tea.NewProgram(New(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if m, ok := final.(*Model); ok {
		return m.Err()
	}
	return nil
}
