// Package tui renders the interactive chat screen.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/websearch/agent"
)

// Answerer turns a question into a conversational answer.
type Answerer interface {
	Process(ctx context.Context, question string) string
}

// answerMsg carries a finished answer back into the update loop.
type answerMsg struct {
	question string
	answer   string
}

// ChatModel is the bubbletea model for the chat loop.
type ChatModel struct {
	ctx      context.Context
	answerer Answerer
	styles   *StyleSet
	version  string

	input   textinput.Model
	spinner spinner.Model

	transcript []agent.Turn
	busy       bool
	quitting   bool
	width      int
}

// NewChatModel creates a chat model that asks answerer for every question.
func NewChatModel(ctx context.Context, answerer Answerer, styles *StyleSet, version string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask me any question..."
	ti.Prompt = "You: "
	ti.PromptStyle = styles.UserLabel
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return ChatModel{
		ctx:      ctx,
		answerer: answerer,
		styles:   styles,
		version:  version,
		input:    ti,
		spinner:  sp,
		width:    80,
	}
}

// Init starts the cursor blinking.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.busy {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if agent.IsExit(question) {
				m.quitting = true
				return m, tea.Quit
			}
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.transcript = append(m.transcript, agent.Turn{Role: agent.RoleUser, Content: question})
			m.busy = true
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.transcript = append(m.transcript, agent.Turn{Role: agent.RoleAssistant, Content: msg.answer})
		m.busy = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) ask(question string) tea.Cmd {
	ctx, answerer := m.ctx, m.answerer
	return func() tea.Msg {
		return answerMsg{question: question, answer: answerer.Process(ctx, question)}
	}
}

// View renders the chat screen.
func (m ChatModel) View() string {
	if m.quitting {
		return "  Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(RenderBanner(m.styles, m.version, m.width))

	for _, turn := range m.transcript {
		label := m.styles.UserLabel.Render("You:")
		if turn.Role == agent.RoleAssistant {
			label = m.styles.AgentLabel.Render("Agent:")
		}
		b.WriteString("  " + label + " " + m.styles.Message.Render(turn.Content) + "\n\n")
	}

	if m.busy {
		b.WriteString("  " + m.spinner.View() + " " + m.styles.DimTxt.Render("Searching...") + "\n\n")
	}

	inputWidth := m.width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.input.Width = inputWidth
	b.WriteString("  " + m.styles.InputBorder.Width(inputWidth).Render(m.input.View()) + "\n")
	b.WriteString("  " + m.styles.KbdKey.Render("⏎") + " " + m.styles.KbdDesc.Render("ask") +
		"    " + m.styles.KbdKey.Render("esc") + " " + m.styles.KbdDesc.Render("quit") + "\n")
	return b.String()
}

// Transcript returns the exchanges shown so far.
func (m ChatModel) Transcript() []agent.Turn {
	out := make([]agent.Turn, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// Busy reports whether a question is waiting for its answer.
func (m ChatModel) Busy() bool {
	return m.busy
}
