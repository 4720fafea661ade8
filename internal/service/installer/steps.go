package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	id    string
	label string
}

// choiceStep picks one option from a fixed list.
type choiceStep struct {
	title   string
	choices []choice
	cursor  int
	apply   func(state *InstallState, id string)
}

func (s *choiceStep) Init() tea.Cmd { return nil }

func (s *choiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor].id)
			return nil, nil
		}
	}
	return s, nil
}

func (s *choiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("› "+c.label) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+c.label) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

// inputStep reads one line of text. It is skipped when skip reports true.
type inputStep struct {
	title       func(state *InstallState) string
	placeholder func(state *InstallState) string
	secret      bool
	skip        func(state *InstallState) bool
	apply       func(state *InstallState, value string) error

	input   textinput.Model
	started bool
	err     error
}

func (s *inputStep) Init() tea.Cmd { return nil }

func (s *inputStep) start(state *InstallState) {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 48
	if s.placeholder != nil {
		s.input.Placeholder = s.placeholder(state)
	}
	if s.secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
	s.started = true
}

func (s *inputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.started {
		if s.skip != nil && s.skip(state) {
			return nil, nil
		}
		s.start(state)
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if err := s.apply(state, strings.TrimSpace(s.input.Value())); err != nil {
			s.err = err
			return s, nil
		}
		return nil, nil
	}
	return s, cmd
}

func (s *inputStep) View(state *InstallState) string {
	if !s.started {
		return "Loading...\n"
	}
	view := fmt.Sprintf("%s\n\n%s\n\n", s.title(state), s.input.View())
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

// saveStep writes the rendered configuration to <runtime>/.env and refuses to overwrite.
type saveStep struct {
	dir   string
	err   error
	saved bool
}

func (s *saveStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *saveStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}
	if s.err = writeEnvFile(s.dir, state); s.err != nil {
		return s, nil
	}
	s.saved = true
	return nil, nil
}

func (s *saveStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}

func writeEnvFile(dir string, state *InstallState) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := state.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0600)
}

func parseOwnerID(state *InstallState, value string) error {
	if value == "" {
		state.Telegram.OwnerID = 0
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("owner id must be a number")
	}
	state.Telegram.OwnerID = id
	return nil
}
