package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/faqbot/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// defaultModels is offered as placeholder and used when the answer is left empty.
var defaultModels = map[string]string{
	"groq":       "llama3-8b-8192",
	"openai":     "gpt-4o-mini",
	"openrouter": "meta-llama/llama-3.1-8b-instruct",
	"anthropic":  "claude-3-5-haiku-latest",
	"google":     "gemini-2.0-flash",
	"ollama":     "llama3",
}

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps(runtimeDir string) []Step {
	return []Step{
		&choiceStep{
			title: "Select the LLM provider used for fallback answers and translation:",
			choices: []choice{
				{"groq", "Groq"},
				{"openai", "OpenAI"},
				{"openrouter", "OpenRouter"},
				{"anthropic", "Anthropic"},
				{"google", "Google Gemini"},
				{"ollama", "Ollama (local)"},
				{"custom", "Custom OpenAI-compatible endpoint"},
			},
			apply: func(state *InstallState, id string) { state.Provider.Provider = id },
		},
		&inputStep{
			title: func(state *InstallState) string {
				if state.Provider.Provider == "ollama" {
					return "Ollama API key (optional, press enter to skip):"
				}
				return fmt.Sprintf("Enter your %s API key:", state.Provider.Provider)
			},
			secret: true,
			apply: func(state *InstallState, value string) error {
				if value == "" && state.Provider.Provider != "ollama" && state.Provider.Provider != "custom" {
					return fmt.Errorf("an API key is required for %s", state.Provider.Provider)
				}
				state.SetAPIKey(value)
				return nil
			},
		},
		&inputStep{
			title: func(state *InstallState) string { return "Base URL of the endpoint:" },
			placeholder: func(state *InstallState) string {
				if state.Provider.Provider == "ollama" {
					return state.Provider.OllamaBaseURL
				}
				return "https://llm.example.com/v1"
			},
			skip: func(state *InstallState) bool {
				return state.Provider.Provider != "ollama" && state.Provider.Provider != "custom"
			},
			apply: func(state *InstallState, value string) error {
				if state.Provider.Provider == "ollama" {
					if value != "" {
						state.Provider.OllamaBaseURL = value
					}
					return nil
				}
				if value == "" {
					return fmt.Errorf("a base URL is required")
				}
				state.Provider.CustomOpenAIBaseURL = value
				return nil
			},
		},
		&inputStep{
			title:       func(state *InstallState) string { return "Model name (enter keeps the suggestion):" },
			placeholder: func(state *InstallState) string { return defaultModels[state.Provider.Provider] },
			apply: func(state *InstallState, value string) error {
				if value == "" {
					value = defaultModels[state.Provider.Provider]
				}
				if value == "" {
					return fmt.Errorf("a model name is required")
				}
				state.Provider.Model = value
				return nil
			},
		},
		&choiceStep{
			title: "How will people reach the bot?",
			choices: []choice{
				{"http", "HTTP API"},
				{"both", "HTTP API and Telegram"},
				{"telegram", "Telegram only"},
			},
			apply: func(state *InstallState, id string) {
				state.App.EnableHTTP = id != "telegram"
				state.App.EnableTelegram = id != "http"
			},
		},
		&inputStep{
			title:       func(state *InstallState) string { return "Enter your Telegram bot token:" },
			placeholder: func(state *InstallState) string { return "123456789:ABCDEF..." },
			secret:      true,
			skip:        func(state *InstallState) bool { return !state.App.EnableTelegram },
			apply: func(state *InstallState, value string) error {
				if value == "" {
					return fmt.Errorf("a bot token is required")
				}
				state.Telegram.Token = value
				return nil
			},
		},
		&inputStep{
			title:       func(state *InstallState) string { return "Restrict the bot to one Telegram user id (optional):" },
			placeholder: func(state *InstallState) string { return "123456789" },
			skip:        func(state *InstallState) bool { return !state.App.EnableTelegram },
			apply:       parseOwnerID,
		},
		&saveStep{dir: runtimeDir},
	}
}

type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if next != nil {
		return m, cmd
	}

	m.currentStep++
	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}
	// skipped input steps finish on their first update
	return m, tea.Batch(m.steps[m.currentStep].Init(), func() tea.Msg { return nextMsg{} })
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up "+core.AppName) + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes <runtimeDir>/.env on success.
func RunWizard(runtimeDir string) (*InstallState, error) {
	state, err := NewInstallState()
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(model{steps: getSteps(runtimeDir), state: state}, tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting {
		return nil, fmt.Errorf("installation interrupted")
	}
	if final.currentStep < len(final.steps) {
		return nil, fmt.Errorf("installation did not finish")
	}
	return final.state, nil
}
