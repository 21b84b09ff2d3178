package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/websearch/agent"
)

type echoAnswerer struct {
	questions []string
}

func (e *echoAnswerer) Process(_ context.Context, q string) string {
	e.questions = append(e.questions, q)
	return "answer to " + q
}

func typeText(t *testing.T, m ChatModel, s string) ChatModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(ChatModel)
}

func press(t *testing.T, m ChatModel, k tea.KeyType) (ChatModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(ChatModel), cmd
}

func newTestModel(a Answerer) ChatModel {
	return NewChatModel(context.Background(), a, NewStyleSet(DarkTheme), "test")
}

func TestChatAsk(t *testing.T) {
	a := &echoAnswerer{}
	m := typeText(t, newTestModel(a), "what is go")

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a command after enter")
	}
	if !m.Busy() {
		t.Error("model should be busy while answering")
	}
	if got := m.Transcript(); len(got) != 1 || got[0].Role != agent.RoleUser || got[0].Content != "what is go" {
		t.Fatalf("transcript = %+v", got)
	}

	msg := m.ask("what is go")()
	next, _ := m.Update(msg)
	m = next.(ChatModel)

	if m.Busy() {
		t.Error("model should be idle after the answer")
	}
	got := m.Transcript()
	if len(got) != 2 || got[1].Role != agent.RoleAssistant || got[1].Content != "answer to what is go" {
		t.Fatalf("transcript = %+v", got)
	}
	if !strings.Contains(m.View(), "answer to what is go") {
		t.Error("view should show the answer")
	}
}

func TestChatEmptyInputIgnored(t *testing.T) {
	m := typeText(t, newTestModel(&echoAnswerer{}), "   ")
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil || m.Busy() || len(m.Transcript()) != 0 {
		t.Errorf("blank input should be ignored, busy=%v transcript=%v", m.Busy(), m.Transcript())
	}
}

func TestChatQuit(t *testing.T) {
	for _, word := range []string{"quit", "exit", "bye", "BYE"} {
		t.Run(word, func(t *testing.T) {
			m := typeText(t, newTestModel(&echoAnswerer{}), word)
			m, cmd := press(t, m, tea.KeyEnter)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if !strings.Contains(m.View(), "Goodbye") {
				t.Errorf("view = %q", m.View())
			}
		})
	}

	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := press(t, newTestModel(&echoAnswerer{}), k)
		if cmd == nil {
			t.Fatalf("%v: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", k)
		}
	}
}

func TestChatEnterWhileBusy(t *testing.T) {
	m := typeText(t, newTestModel(&echoAnswerer{}), "first")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "second")
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil {
		t.Error("enter while busy should do nothing")
	}
	if len(m.Transcript()) != 1 {
		t.Errorf("transcript = %+v", m.Transcript())
	}
}

func TestDetectTheme(t *testing.T) {
	t.Setenv("WEBSEARCH_THEME", "")
	t.Setenv("COLORFGBG", "")

	if got := DetectTheme("light").Name; got != "light" {
		t.Errorf("flag light: got %q", got)
	}
	if got := DetectTheme("").Name; got != "dark" {
		t.Errorf("default: got %q", got)
	}

	t.Setenv("WEBSEARCH_THEME", "light")
	if got := DetectTheme("").Name; got != "light" {
		t.Errorf("env light: got %q", got)
	}
	if got := DetectTheme("dark").Name; got != "dark" {
		t.Errorf("flag overrides env: got %q", got)
	}

	t.Setenv("WEBSEARCH_THEME", "")
	t.Setenv("COLORFGBG", "0;15")
	if got := DetectTheme("").Name; got != "light" {
		t.Errorf("COLORFGBG light: got %q", got)
	}
}

func TestRenderBanner(t *testing.T) {
	out := RenderBanner(NewStyleSet(DarkTheme), "", 80)
	if !strings.Contains(out, "Web Search Agent") || !strings.Contains(out, "vdev") {
		t.Errorf("banner = %q", out)
	}
}
