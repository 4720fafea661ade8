package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *InstallState {
	t.Helper()
	s, err := NewInstallState()
	require.NoError(t, err)
	return s
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func down() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }

func typeText(t *testing.T, step Step, state *InstallState, text string) Step {
	t.Helper()
	for _, r := range text {
		next, _ := step.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, state, 80, 24)
		require.NotNil(t, next)
		step = next
	}
	return step
}

func TestNewInstallState_Defaults(t *testing.T) {
	s := newState(t)
	assert.Equal(t, "groq", s.Provider.Provider)
	assert.True(t, s.App.EnableHTTP)
	assert.Equal(t, 5, s.App.MaxSessions)

	out, err := s.Render()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_TelegramOnlyWhenEnabled(t *testing.T) {
	s := newState(t)
	s.Provider.Provider = "anthropic"
	s.SetAPIKey("sk-ant-1")
	s.Telegram.Token = "123:abc"

	out, err := s.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "LLM_PROVIDER=anthropic\n")
	assert.Contains(t, out, "ANTHROPIC_API_KEY=sk-ant-1\n")
	assert.NotContains(t, out, "TELEGRAM_TOKEN")

	s.App.EnableTelegram = true
	out, err = s.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "ENABLE_TELEGRAM=true\n")
	assert.Contains(t, out, "TELEGRAM_TOKEN=123:abc\n")
}

func TestChoiceStep(t *testing.T) {
	s := newState(t)
	steps := getSteps(t.TempDir())
	provider := steps[0]

	next, _ := provider.Update(down(), s, 80, 24)
	require.NotNil(t, next)
	next, _ = next.Update(down(), s, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(s), "› OpenRouter")

	done, _ := next.Update(enter(), s, 80, 24)
	assert.Nil(t, done)
	assert.Equal(t, "openrouter", s.Provider.Provider)
}

func TestInputStep_ValidatesAndApplies(t *testing.T) {
	s := newState(t)
	s.Provider.Provider = "openai"
	apiKey := getSteps(t.TempDir())[1]

	step, _ := apiKey.Update(nextMsg{}, s, 80, 24)
	require.NotNil(t, step)
	assert.Contains(t, step.View(s), "openai API key")

	// empty key is rejected
	step, _ = step.Update(enter(), s, 80, 24)
	require.NotNil(t, step)
	assert.Contains(t, step.View(s), "required")

	step = typeText(t, step, s, "sk-123")
	done, _ := step.Update(enter(), s, 80, 24)
	assert.Nil(t, done)
	assert.Equal(t, "sk-123", s.Provider.OpenAIAPIKey)
}

func TestInputStep_Skipped(t *testing.T) {
	s := newState(t)
	s.Provider.Provider = "groq"
	baseURL := getSteps(t.TempDir())[2]

	done, _ := baseURL.Update(nextMsg{}, s, 80, 24)
	assert.Nil(t, done)
}

func TestModelStep_UsesSuggestion(t *testing.T) {
	s := newState(t)
	s.Provider.Provider = "google"
	modelStep := getSteps(t.TempDir())[3]

	step, _ := modelStep.Update(nextMsg{}, s, 80, 24)
	require.NotNil(t, step)
	done, _ := step.Update(enter(), s, 80, 24)
	assert.Nil(t, done)
	assert.Equal(t, "gemini-2.0-flash", s.Provider.Model)
}

func TestParseOwnerID(t *testing.T) {
	s := newState(t)
	require.NoError(t, parseOwnerID(s, "42"))
	assert.Equal(t, int64(42), s.Telegram.OwnerID)
	assert.Error(t, parseOwnerID(s, "me"))
	require.NoError(t, parseOwnerID(s, ""))
	assert.Zero(t, s.Telegram.OwnerID)
}

func TestWriteEnvFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")
	s := newState(t)
	s.Provider.Provider = "openai"
	s.SetAPIKey("sk-1")
	s.Provider.Model = "gpt-4o-mini"
	s.App.SystemPrompt = "Answer briefly # politely"

	require.NoError(t, writeEnvFile(dir, s))

	values, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "openai", values["LLM_PROVIDER"])
	assert.Equal(t, "sk-1", values["OPENAI_API_KEY"])
	assert.Equal(t, "gpt-4o-mini", values["LLM_MODEL"])
	assert.Equal(t, "Answer briefly # politely", values["SYSTEM_PROMPT"])

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = writeEnvFile(dir, s)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"))
}
