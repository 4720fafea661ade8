package core

import "time"

const (
	AppName       = "FAQBot"
	AppVersion    = "0.1.0"
	RepositoryURL = "https://github.com/sandevgo/faqbot"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultSystemPrompt is sent ahead of every generated turn.
const DefaultSystemPrompt = "You are a friendly conversational chatbot who responds in the language of the user."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func HumanMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Corpus names a searchable collection of records.
type Corpus string

const (
	CorpusKnowledge  Corpus = "knowledge"
	CorpusUnanswered Corpus = "unanswered"
)

const (
	LangEnglish   = "en"
	LangHungarian = "hu"
	LangGerman    = "de"
)

// SupportedLanguages is the order in which a source pair is picked for translation.
var SupportedLanguages = []string{LangEnglish, LangHungarian, LangGerman}

var LanguageNames = map[string]string{
	LangEnglish:   "English",
	LangHungarian: "Hungarian",
	LangGerman:    "German",
}

type KnowledgeItem struct {
	ID         string    `json:"id" yaml:"id"`
	Question   string    `json:"question" yaml:"question"`
	Answer     string    `json:"answer" yaml:"answer"`
	References []string  `json:"references,omitempty" yaml:"references"`
	Language   string    `json:"language" yaml:"language"`
	CreatedAt  time.Time `json:"created_at" yaml:"-"`
}

type UnansweredQuestion struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	FirstSeenAt time.Time `json:"first_seen_at"`
}

type ChatLogEntry struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	SessionID     string    `json:"chat_id"`
	MatchedItemID *string   `json:"question_id"`
	Timestamp     time.Time `json:"timestamp"`
}

type ReviewEntry struct {
	ID          string    `json:"id"`
	SourceLogID string    `json:"log_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Timestamp   time.Time `json:"timestamp"`
}

// SearchQuery asks a corpus for its single best document scoring strictly above Threshold.
type SearchQuery struct {
	Text      string
	Corpus    Corpus
	Index     string
	Threshold float64
}

type Candidate struct {
	ID     string
	Score  float64
	Answer string
}
