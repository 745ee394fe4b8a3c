package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/faushop/storefront/internal/domain/catalog"
)

// languageNames spells out the target language for the model prompt.
var languageNames = map[catalog.Language]string{
	catalog.LangJA:   "Japanese",
	catalog.LangEN:   "English",
	catalog.LangZHTW: "Traditional Chinese",
	catalog.LangZHCN: "Simplified Chinese",
	catalog.LangKO:   "Korean",
}

// GeminiConfig configures the Gemini-backed translator.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Gemini translates storefront text through the Gemini generate-content API.
// All failures degrade to the original text.
type Gemini struct {
	client *genai.Client
	model  string
	lg     *zap.Logger
}

var _ Translator = (*Gemini)(nil)

// NewGemini creates the translator. The API key is required; the model
// defaults to a small fast one.
func NewGemini(ctx context.Context, cfg GeminiConfig, lg *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	return &Gemini{client: client, model: cfg.Model, lg: lg}, nil
}

// Translate asks the model for a plain translation. On any failure, or when
// the model returns nothing usable, the original text comes back unchanged
// with an advisory error.
func (g *Gemini) Translate(ctx context.Context, text string, target, source catalog.Language) (string, error) {
	if strings.TrimSpace(text) == "" || target == source {
		return text, nil
	}

	prompt := fmt.Sprintf(
		"Translate the following %s e-commerce product text into %s. "+
			"Reply with the translation only, no quotes, no explanations.\n\n%s",
		languageNames[source], languageNames[target], text,
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	})
	if err != nil {
		g.lg.Warn("gemini translate failed", zap.String("target", string(target)), zap.Error(err))
		return text, errors.Wrap(err, "generate content")
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return text, errors.New("empty translation response")
	}
	return out, nil
}
