package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/faqbot/internal/core"
)

const translatePrompt = "Translate the following text from %s to %s and only give translation in output and nothing else:\n\n%s"

// Translator fills missing language variants with the generative backend.
type Translator struct {
	gen core.GenerativeBackend
}

func NewTranslator(gen core.GenerativeBackend) *Translator {
	return &Translator{gen: gen}
}

func (t *Translator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if src == dst {
		return text, nil
	}
	out, err := t.gen.GenerateCompletion(ctx, "", nil, fmt.Sprintf(translatePrompt, src, dst, text))
	if err != nil {
		return "", fmt.Errorf("failed to translate %s->%s: %w", src, dst, err)
	}
	return strings.TrimSpace(out), nil
}
