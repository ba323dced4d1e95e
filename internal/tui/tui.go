// Package tui is a full-screen terminal host for a battle. It drains a
// host.Channel into a scrolling log and answers pending prompts from a
// numeric input line.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/skirmish/internal/host"
)

// eventMsg carries one Channel event into the Update loop.
type eventMsg struct {
	event host.Event
}

// finishedMsg reports that the battle goroutine returned. Events still queued
// at that point travel with it so no narration is lost.
type finishedMsg struct {
	events []host.Event
	err    error
}

// Model is the Bubble Tea model for the battle TUI.
type Model struct {
	ch   *host.Channel
	done <-chan error

	viewport viewport.Model
	input    textinput.Model

	lines   []string
	pending *host.Request

	width    int
	height   int
	ready    bool
	finished bool
	quitting bool
	err      error
}

// New creates a TUI model that drains ch until done delivers the battle result.
func New(ch *host.Channel, done <-chan error) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 8
	ti.PromptStyle = styleInputPrompt
	return Model{ch: ch, done: done, input: ti}
}

// Run starts battle in the background and drives the TUI until the user quits.
// Quitting early cancels the battle.
//
// Postcondition: Returns the battle's error, if it finished with one.
func Run(ctx context.Context, ch *host.Channel, battle func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer ch.Close()

	done := make(chan error, 1)
	go func() { done <- battle(ctx) }()

	p := tea.NewProgram(New(ch, done), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.err
	}
	return nil
}

// Init starts listening for Channel events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

func (m Model) listen() tea.Cmd {
	events, done := m.ch.Events(), m.done
	return func() tea.Msg {
		select {
		case ev := <-events:
			return eventMsg{event: ev}
		case err := <-done:
			msg := finishedMsg{err: err}
			for {
				select {
				case ev := <-events:
					msg.events = append(msg.events, ev)
				default:
					return msg
				}
			}
		}
	}
}

// Update handles key presses, resizes and Channel traffic.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case eventMsg:
		m = m.apply(msg.event)
		return m, m.listen()

	case finishedMsg:
		for _, ev := range msg.events {
			m = m.apply(ev)
		}
		m.finished = true
		m.pending = nil
		m.err = msg.err
		if msg.err != nil {
			m = m.appendLines(fmt.Sprintf("<red>Error: %v</red>", msg.err))
		}
		m.input.Placeholder = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply folds one Channel event into the log.
func (m Model) apply(ev host.Event) Model {
	switch ev.Kind {
	case host.EventLine:
		return m.appendLines(ev.Line)
	case host.EventPrompt:
		req := ev.Request
		lines := []string{req.Question}
		for i, opt := range req.Options {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, opt))
		}
		m.pending = &req
		lo, hi := req.Bounds()
		m.input.Placeholder = fmt.Sprintf("choose %d-%d", lo, hi)
		return m.appendLines(lines...)
	}
	return m
}

// handleEnter submits the input line as the answer to the pending prompt.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.finished {
		m.quitting = true
		return m, tea.Quit
	}
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if m.pending == nil || text == "" {
		return m, nil
	}

	lo, hi := m.pending.Bounds()
	span := fmt.Sprintf("%d-%d", lo, hi)
	n, err := strconv.Atoi(text)
	if err != nil {
		return m.appendLines(fmt.Sprintf("Please choose a <red>number</red> %s! Try again.", span)), nil
	}
	if n < lo || n > hi {
		return m.appendLines(fmt.Sprintf("Please choose a number <red>%s</red>! Try again.", span)), nil
	}

	resp := host.Response{Value: n}
	if m.pending.Kind == host.KindChoice {
		resp.Value = n - 1
	}
	if err := m.ch.Respond(resp); err != nil {
		return m.appendLines(fmt.Sprintf("<red>%v</red>", err)), nil
	}
	m.pending = nil
	m.input.Placeholder = ""
	m.lines = append(m.lines, stylePlayerInput.Render("> "+text))
	m.refreshViewport()
	return m, nil
}

func (m Model) appendLines(lines ...string) Model {
	for _, line := range lines {
		m.lines = append(m.lines, renderMarkup(line))
	}
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps the log at the current width and scrolls to the end.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := m.width
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)
	wrapped := make([]string, len(m.lines))
	for i, line := range m.lines {
		wrapped[i] = wrap.Render(line)
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.finished:
		status = " Battle over. Press enter to exit."
	case m.pending != nil:
		lo, hi := m.pending.Bounds()
		status = fmt.Sprintf(" Choose %d-%d and press enter.", lo, hi)
	default:
		status = " ..."
	}
	return styleStatusBar.Width(m.width).Render(status)
}

// View renders the log, status bar and input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return styleHint.Render("Loading...")
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}
